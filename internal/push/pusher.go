package push

// quizRecordStart is the custom record type of the first quiz answer; each
// subsequent answer uses the next type up, giving at most ten slots.
const quizRecordStart = 80509

// minTokens is the smallest amount a push may carry.
const minTokens = 1

// Record is a custom payment record attached to the push.
type Record struct {
	Type  uint64
	Value []byte
}

// ProbeRequest carries the computed parameters handed to the payment
// prober. Peer constraints are resolved public keys; empty means
// unconstrained.
type ProbeRequest struct {
	Destination string
	InThrough   string
	MaxFee      int64
	Message     string
	Messages    []Record
	OutThrough  string
	Tokens      int64
}

// quizRecords encodes quiz answers as custom records: the record type is
// the quiz base offset plus the answer's position, the value is the
// answer's UTF-8 bytes.
func quizRecords(answers []string) []Record {
	if len(answers) == 0 {
		return nil
	}

	records := make([]Record, len(answers))
	for i, answer := range answers {
		records[i] = Record{Type: quizRecordStart + uint64(i), Value: []byte(answer)}
	}
	return records
}
