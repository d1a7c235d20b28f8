package rewriter

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// callObject is the decoded {to, data, from?} object spec.md §3 describes,
// grounded on wyf-ACCEPT-eth2030's pkg/rpc.CallArgs shape but narrowed to
// exactly the fields this compressor cares about and validated against the
// "no keys outside {to, data, from}" eligibility gate at decode time.
type callObject struct {
	to   common.Address
	data []byte
	from *common.Address
}

// decodeCallObject parses raw into a callObject, returning ok=false for
// anything that disqualifies the call per spec.md §4.4: extra keys, a
// missing to, or empty/missing data.
func decodeCallObject(raw json.RawMessage) (*callObject, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	for k := range fields {
		switch k {
		case "to", "data", "from":
		default:
			return nil, false
		}
	}

	toRaw, ok := fields["to"]
	if !ok {
		return nil, false
	}
	var to common.Address
	if err := json.Unmarshal(toRaw, &to); err != nil {
		return nil, false
	}

	dataRaw, ok := fields["data"]
	if !ok {
		return nil, false
	}
	var data hexutil.Bytes
	if err := json.Unmarshal(dataRaw, &data); err != nil {
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	obj := &callObject{to: to, data: data}
	if fromRaw, ok := fields["from"]; ok {
		var from common.Address
		if err := json.Unmarshal(fromRaw, &from); err != nil {
			return nil, false
		}
		obj.from = &from
	}
	return obj, true
}

// encode renders the call object back to a JSON-RPC call object, used when
// building the rewritten payload.
func (c *callObject) encode() json.RawMessage {
	m := map[string]interface{}{
		"to":   c.to,
		"data": hexutil.Bytes(c.data),
	}
	if c.from != nil {
		m["from"] = *c.from
	}
	b, err := json.Marshal(m)
	if err != nil {
		panic(err) // the three fields above always marshal cleanly
	}
	return b
}

// decodeBlockTag reports whether raw, if present, is exactly "latest" per
// spec.md §4.4's eligibility gate. A missing params[1] is treated as
// "latest" by default.
func decodeBlockTag(raw json.RawMessage) bool {
	if raw == nil {
		return true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s == "latest"
}

// stateOverride is a minimal view of the params[2] state-override mapping:
// enough to validate the eligibility gate and merge in the decompressor
// entry without disturbing any other key's contents.
type stateOverride map[string]json.RawMessage

// decodeStateOverride reports whether raw, if present, contains only keys
// matching Multicall3Address (case-insensitive), per spec.md §4.4.
func decodeStateOverride(raw json.RawMessage) (stateOverride, bool) {
	if raw == nil {
		return stateOverride{}, true
	}
	var m stateOverride
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	want := strings.ToLower(Multicall3Address.Hex())
	for k := range m {
		if strings.ToLower(k) != want {
			return nil, false
		}
	}
	return m, true
}

// withDecompressorEntry returns a copy of o with a {DecompressorAddress:
// {code: bytecode}} entry merged in, preserving every key already present
// (spec.md P4: merge preservation).
func (o stateOverride) withDecompressorEntry(bytecode []byte) stateOverride {
	merged := make(stateOverride, len(o)+1)
	for k, v := range o {
		merged[k] = v
	}
	entry, err := json.Marshal(map[string]interface{}{
		"code": hexutil.Bytes(bytecode),
	})
	if err != nil {
		panic(err)
	}
	merged[DecompressorAddress.Hex()] = entry
	return merged
}
