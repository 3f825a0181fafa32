package arch

// Opcode describes a single instruction encoding of an architecture.
type Opcode struct {
	ID          string `json:"id"`
	Mnemonic    string `json:"mnemonic"`
	Pattern     string `json:"pattern"`     // bit pattern grouped in nibbles
	Size        int    `json:"size"`        // size in bytes
	Specificity int    `json:"specificity"` // number of literal bits
	Flow        string `json:"flow"`
}
