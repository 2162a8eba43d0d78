package ledger

// Attestation is the write-once record the ledger service keeps per uid.
// It carries only the fields worth attesting; display data stays in the
// primary store.
type Attestation struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	BatchNumber string `json:"batch_number"`
	ExpiryUnix  int64  `json:"expiry_unix"`
}

// writeResponse is returned by the ledger on a successful attestation write.
type writeResponse struct {
	TxHash string `json:"tx_hash"`
}

// errorResponse is the ledger's failure envelope.
type errorResponse struct {
	Message string `json:"message"`
}
