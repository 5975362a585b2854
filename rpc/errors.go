package rpc

import (
	"github.com/powerman/rpc-codec/jsonrpc2"

	"github.com/guildxyz/feeledger/common/result"
)

// toRPCError carries the result code of err in the JSON-RPC error object.
func toRPCError(err error) error {
	if err == nil {
		return nil
	}
	res := result.FromError(err)
	return jsonrpc2.NewError(int(res.Code), res.Message)
}
