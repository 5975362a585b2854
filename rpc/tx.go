package rpc

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	cmn "github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/ledger/types"
)

// ------------------------------- BroadcastRawTransaction -----------------------------------

type BroadcastRawTransactionArgs struct {
	TxBytes string `json:"tx_bytes"`
}

type BroadcastRawTransactionResult struct {
	TxHash string               `json:"hash"`
	Height cmn.JSONUint64       `json:"height"`
	Events []*types.EventRecord `json:"events"`
}

// BroadcastRawTransaction executes a hex encoded signed transaction. The
// call returns once the transaction has been committed or rejected.
func (t *FeeLedgerRPCService) BroadcastRawTransaction(
	args *BroadcastRawTransactionArgs, result *BroadcastRawTransactionResult) (err error) {
	txBytes, err := decodeTxBytes(args.TxBytes)
	if err != nil {
		return toRPCError(err)
	}

	tx, err := types.TxFromBytes(txBytes)
	if err != nil {
		return toRPCError(err)
	}
	logger.Infof("Broadcast raw transaction: %v", tx)

	res, err := t.ledger.ExecuteTx(tx)
	if err != nil {
		logger.Infof("Transaction rejected: %v", err)
		return toRPCError(err)
	}

	result.TxHash = res.TxHash.Hex()
	result.Height = cmn.JSONUint64(res.Height)
	result.Events = res.Records
	return nil
}

func decodeTxBytes(in string) ([]byte, error) {
	if in == "" {
		return nil, errors.New("tx_bytes must be specified")
	}
	if !has0xPrefix(in) {
		in = "0x" + in
	}
	txBytes, err := hexutil.Decode(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode tx_bytes")
	}
	return txBytes, nil
}

func has0xPrefix(in string) bool {
	return len(in) >= 2 && in[0] == '0' && (in[1] == 'x' || in[1] == 'X')
}
