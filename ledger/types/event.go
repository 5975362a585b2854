package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	cmn "github.com/guildxyz/feeledger/common"
)

const (
	EventVaultRegistered          = "VaultRegistered"
	EventFeeReceived              = "FeeReceived"
	EventWithdrawn                = "Withdrawn"
	EventGuildFeeCollectorChanged = "GuildFeeCollectorChanged"
	EventGuildSharex100Changed    = "GuildSharex100Changed"
	EventPoapFeeCollectorChanged  = "PoapFeeCollectorChanged"
	EventPoapSharex100Changed     = "PoapSharex100Changed"
	EventApproval                 = "Approval"
)

// Event is a notification emitted by a successful transaction.
type Event interface {
	EventName() string
}

type VaultRegisteredEvent struct {
	VaultID uint64         `json:"vault_id"`
	EventID string         `json:"event_id"`
	Owner   common.Address `json:"owner"`
	Asset   Asset          `json:"asset"`
	Fee     *big.Int       `json:"fee"`
}

type FeeReceivedEvent struct {
	VaultID uint64         `json:"vault_id"`
	Payer   common.Address `json:"payer"`
	Amount  *big.Int       `json:"amount"`
}

type WithdrawnEvent struct {
	VaultID     uint64   `json:"vault_id"`
	GuildAmount *big.Int `json:"guild_amount"`
	PoapAmount  *big.Int `json:"poap_amount"`
	OwnerAmount *big.Int `json:"owner_amount"`
}

type GuildFeeCollectorChangedEvent struct {
	NewAddress common.Address `json:"new_address"`
}

type GuildSharex100ChangedEvent struct {
	NewShare uint64 `json:"new_share"`
}

type PoapFeeCollectorChangedEvent struct {
	NewAddress common.Address `json:"new_address"`
}

type PoapSharex100ChangedEvent struct {
	NewShare uint64 `json:"new_share"`
}

type ApprovalEvent struct {
	Owner   common.Address `json:"owner"`
	Asset   Asset          `json:"asset"`
	Spender common.Address `json:"spender"`
	Amount  *big.Int       `json:"amount"`
}

func (VaultRegisteredEvent) EventName() string          { return EventVaultRegistered }
func (FeeReceivedEvent) EventName() string              { return EventFeeReceived }
func (WithdrawnEvent) EventName() string                { return EventWithdrawn }
func (GuildFeeCollectorChangedEvent) EventName() string { return EventGuildFeeCollectorChanged }
func (GuildSharex100ChangedEvent) EventName() string    { return EventGuildSharex100Changed }
func (PoapFeeCollectorChangedEvent) EventName() string  { return EventPoapFeeCollectorChanged }
func (PoapSharex100ChangedEvent) EventName() string     { return EventPoapSharex100Changed }
func (ApprovalEvent) EventName() string                 { return EventApproval }

// EventRecord is an event as stored in the ledger, in commit order.
type EventRecord struct {
	Index   uint64
	Height  uint64
	TxHash  common.Hash
	Name    string
	Payload []byte // JSON encoded event
}

func NewEventRecord(index, height uint64, txHash common.Hash, ev Event) (*EventRecord, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode event %v", ev.EventName())
	}
	return &EventRecord{
		Index:   index,
		Height:  height,
		TxHash:  txHash,
		Name:    ev.EventName(),
		Payload: payload,
	}, nil
}

// Decode returns the typed event carried by the record.
func (r *EventRecord) Decode() (Event, error) {
	var ev Event
	switch r.Name {
	case EventVaultRegistered:
		ev = &VaultRegisteredEvent{}
	case EventFeeReceived:
		ev = &FeeReceivedEvent{}
	case EventWithdrawn:
		ev = &WithdrawnEvent{}
	case EventGuildFeeCollectorChanged:
		ev = &GuildFeeCollectorChangedEvent{}
	case EventGuildSharex100Changed:
		ev = &GuildSharex100ChangedEvent{}
	case EventPoapFeeCollectorChanged:
		ev = &PoapFeeCollectorChangedEvent{}
	case EventPoapSharex100Changed:
		ev = &PoapSharex100ChangedEvent{}
	case EventApproval:
		ev = &ApprovalEvent{}
	default:
		return nil, errors.Errorf("unknown event: %v", r.Name)
	}
	if err := json.Unmarshal(r.Payload, ev); err != nil {
		return nil, errors.Wrapf(err, "failed to decode event %v", r.Name)
	}
	return ev, nil
}

func (r *EventRecord) String() string {
	return fmt.Sprintf("EventRecord{%v height: %v, tx: %v, %v %s}", r.Index, r.Height, r.TxHash.Hex(), r.Name, r.Payload)
}

type EventRecordJSON struct {
	Index   cmn.JSONUint64  `json:"index"`
	Height  cmn.JSONUint64  `json:"height"`
	TxHash  common.Hash     `json:"tx_hash"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

func (r *EventRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(EventRecordJSON{
		Index:   cmn.JSONUint64(r.Index),
		Height:  cmn.JSONUint64(r.Height),
		TxHash:  r.TxHash,
		Name:    r.Name,
		Payload: r.Payload,
	})
}

func (r *EventRecord) UnmarshalJSON(data []byte) error {
	var b EventRecordJSON
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	r.Index = uint64(b.Index)
	r.Height = uint64(b.Height)
	r.TxHash = b.TxHash
	r.Name = b.Name
	r.Payload = []byte(b.Payload)
	return nil
}
