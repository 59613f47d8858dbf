package serialize

import (
	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/ports"
)

// Fragments holds the serialized parts of a transaction descriptor, in the
// order they are placed on the build command line.
type Fragments struct {
	TxIn           []string
	TxOut          []string
	TxInCollateral []string
	Certs          []string
	Withdrawals    []string
	Mint           []string
	AuxScript      []string
	Metadata       []string
}

// Args concatenates the fragments in canonical order.
func (f Fragments) Args() []string {
	var args []string
	for _, part := range [][]string{
		f.TxIn, f.TxOut, f.TxInCollateral, f.Certs,
		f.Withdrawals, f.Mint, f.AuxScript, f.Metadata,
	} {
		args = append(args, part...)
	}
	return args
}

// Transaction serializes every part of tx, writing script and metadata
// artifacts through w.
func Transaction(w ports.ArtifactWriter, tx *domain.Transaction) (Fragments, error) {
	var (
		f   Fragments
		err error
	)
	if f.TxIn, err = TxIn(w, tx.TxIn, false); err != nil {
		return Fragments{}, err
	}
	f.TxOut = TxOut(tx.TxOut)
	if f.TxInCollateral, err = TxIn(w, tx.TxInCollateral, true); err != nil {
		return Fragments{}, err
	}
	if f.Certs, err = Certificates(w, tx.Certs); err != nil {
		return Fragments{}, err
	}
	if f.Withdrawals, err = Withdrawals(w, tx.Withdrawals); err != nil {
		return Fragments{}, err
	}
	if f.Mint, err = Mint(w, tx.Mint); err != nil {
		return Fragments{}, err
	}
	if f.AuxScript, err = AuxScripts(w, tx.AuxScript); err != nil {
		return Fragments{}, err
	}
	if f.Metadata, err = Metadata(w, tx.Metadata); err != nil {
		return Fragments{}, err
	}
	return f, nil
}
