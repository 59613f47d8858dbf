package domain

// SignOptions are the inputs of `transaction sign`.
type SignOptions struct {
	TxBody      string   `json:"txBody"`
	SigningKeys []string `json:"signingKeys"`
}

// Validate requires a body and at least one key.
func (o SignOptions) Validate() error {
	if o.TxBody == "" {
		return Invalid("txBody", "tx body file is required")
	}
	if len(o.SigningKeys) == 0 {
		return Invalid("signingKeys", "at least one signing key is required")
	}
	return nil
}

// WitnessOptions are the inputs of `transaction witness`. At least one of
// SigningKey and ScriptFile must be set.
type WitnessOptions struct {
	TxBody     string `json:"txBody"`
	SigningKey string `json:"signingKey,omitempty"`
	ScriptFile string `json:"scriptFile,omitempty"`
}

// Validate requires a body and a witness source.
func (o WitnessOptions) Validate() error {
	if o.TxBody == "" {
		return Invalid("txBody", "tx body file is required")
	}
	if o.SigningKey == "" && o.ScriptFile == "" {
		return Invalid("witness", "script-file or signing-key required for transaction witness command")
	}
	return nil
}

// AssembleOptions are the inputs of `transaction assemble`.
type AssembleOptions struct {
	TxBody       string   `json:"txBody"`
	WitnessFiles []string `json:"witnessFiles"`
}

// Validate requires a body and at least one witness file.
func (o AssembleOptions) Validate() error {
	if o.TxBody == "" {
		return Invalid("txBody", "tx body file is required")
	}
	if len(o.WitnessFiles) == 0 {
		return Invalid("witnessFiles", "at least one witness file is required")
	}
	return nil
}

// ViewOptions select the file inspected by `transaction txid` and
// `transaction view`. TxBody wins when both are set.
type ViewOptions struct {
	TxBody string `json:"txBody,omitempty"`
	TxFile string `json:"txFile,omitempty"`
}

// Validate requires one of the two files.
func (o ViewOptions) Validate() error {
	if o.TxBody == "" && o.TxFile == "" {
		return Invalid("tx", "txBody or txFile required")
	}
	return nil
}

// MinFeeOptions are the inputs of `transaction calculate-min-fee`.
type MinFeeOptions struct {
	TxBody       string  `json:"txBody"`
	TxIn         []TxIn  `json:"txIn"`
	TxOut        []TxOut `json:"txOut"`
	WitnessCount int     `json:"witnessCount"`
}

// Validate requires a body file.
func (o MinFeeOptions) Validate() error {
	if o.TxBody == "" {
		return Invalid("txBody", "tx body file is required")
	}
	if o.WitnessCount < 0 {
		return Invalid("witnessCount", "must not be negative")
	}
	return nil
}

// SubmitOptions select the signed transaction to submit: a file on disk or
// an in-memory envelope written to a temp file first.
type SubmitOptions struct {
	TxFile string        `json:"txFile,omitempty"`
	Tx     *TextEnvelope `json:"tx,omitempty"`
}

// Validate requires exactly one source.
func (o SubmitOptions) Validate() error {
	switch {
	case o.TxFile == "" && o.Tx == nil:
		return Invalid("tx", "txFile or tx required")
	case o.TxFile != "" && o.Tx != nil:
		return Invalid("tx", "txFile and tx are mutually exclusive")
	case o.Tx != nil:
		return o.Tx.Validate()
	}
	return nil
}
