package fraud

// Verdict is the final label shown to the user.
type Verdict int

const (
	Legitimate Verdict = iota
	Fraudulent
)

// VerdictFromLabel maps classifier output 1 to Fraudulent and everything else
// to Legitimate.
func VerdictFromLabel(label int) Verdict {
	if label == 1 {
		return Fraudulent
	}
	return Legitimate
}

func (v Verdict) String() string {
	if v == Fraudulent {
		return "FRAUDULENT"
	}
	return "LEGITIMATE"
}

func (v Verdict) IsFraud() bool {
	return v == Fraudulent
}
