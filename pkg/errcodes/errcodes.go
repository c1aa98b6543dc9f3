package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Шина и приборы
	BusFault          failure.ErrorCode = "BusFault"          // Обрыв связи, мусор на линии, NAK
	BusTimeout        failure.ErrorCode = "BusTimeout"        // Прибор не ответил за отведённое время
	ParseFault        failure.ErrorCode = "ParseFault"        // В ответе прибора нет числа
	InstrumentFault   failure.ErrorCode = "InstrumentFault"   // Прибор ответил, но отказался выполнять
	UnknownInstrument failure.ErrorCode = "UnknownInstrument" // Адрес есть, прибор не опознан

	// Прогон поверки
	OperatorAbort   failure.ErrorCode = "OperatorAbort"   // Ctrl+C или отказ на промпте
	UnknownTest     failure.ErrorCode = "UnknownTest"     // Запросили тест, которого нет в реестре
	TableMismatch   failure.ErrorCode = "TableMismatch"   // Таблица пределов не бьётся с процедурой
	StandardMissing failure.ErrorCode = "StandardMissing" // Нет аттестованного номинала эталона

	// Хранение и выгрузка
	StorageFault failure.ErrorCode = "StorageFault"
	ExportFault  failure.ErrorCode = "ExportFault"
)
