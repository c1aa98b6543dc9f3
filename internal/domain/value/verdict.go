package value

type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

func VerdictOf(pass bool) Verdict {
	if pass {
		return VerdictPass
	}

	return VerdictFail
}

func (v Verdict) String() string {
	return string(v)
}
