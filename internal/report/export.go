package report

import (
	"fmt"
	"os"
	"path/filepath"

	"smuverify/internal/domain"
	"smuverify/internal/domain/entity"
	"smuverify/pkg/errcodes"
)

// Artifacts — пути созданных файлов выгрузки. StandardsCSV пуст, если
// в прогоне не участвовал ни один эталонный резистор.
type Artifacts struct {
	CSV          string `json:"csv"`
	JSON         string `json:"json"`
	StandardsCSV string `json:"standards_csv,omitempty"`
}

// Export пишет артефакты прогона в каталог dir. Имена файлов несут
// метку времени старта, чтобы повторные прогоны не затирали друг друга.
func Export(run *entity.Run, dir string) (Artifacts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifacts{}, domain.WrapError(err, errcodes.ExportFault, "failed to create output dir")
	}

	base := "section18_" + run.StartedAt.Format("20060102_150405")

	artifacts := Artifacts{
		CSV:  filepath.Join(dir, base+".csv"),
		JSON: filepath.Join(dir, base+".json"),
	}

	if err := writeFile(artifacts.CSV, func(f *os.File) error {
		return WriteCSV(f, run.Points)
	}); err != nil {
		return Artifacts{}, err
	}

	if err := writeFile(artifacts.JSON, func(f *os.File) error {
		return WriteJSON(f, run)
	}); err != nil {
		return Artifacts{}, err
	}

	if len(run.Standards) > 0 {
		artifacts.StandardsCSV = filepath.Join(dir, base+"_standards_5156.csv")

		if err := writeFile(artifacts.StandardsCSV, func(f *os.File) error {
			return WriteStandardsCSV(f, run.Standards)
		}); err != nil {
			return Artifacts{}, err
		}
	}

	return artifacts, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.WrapError(err, errcodes.ExportFault, fmt.Sprintf("failed to create %s", path))
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return domain.WrapError(err, errcodes.ExportFault, fmt.Sprintf("failed to close %s", path))
	}

	return nil
}
