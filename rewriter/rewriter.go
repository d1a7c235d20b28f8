package rewriter

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/log"

	"github.com/tadpole-labs/eth-compress/cdrle"
	"github.com/tadpole-labs/eth-compress/flz"
	"github.com/tadpole-labs/eth-compress/jit"
)

// CompressCall implements spec.md §4.4's compress_call. raw is the full
// JSON-RPC request object; algorithm is an optional hint in
// {AlgorithmJIT, AlgorithmFLZ, AlgorithmCD}, or "" to let the size-based
// policy decide. It returns the rewritten payload and true when a rewrite
// was applied, or raw unchanged and false when any eligibility gate failed
// or the rewrite would not have shrunk the request (spec.md §7: this is
// never reported as an error).
func CompressCall(raw json.RawMessage, algorithm string) (json.RawMessage, bool, error) {
	parsed, eligible := parseEligible(raw)
	if !eligible {
		return raw, false, nil
	}

	bytecode, rewrittenData, chosen, err := compressPayload(parsed.call, algorithm)
	if err != nil {
		return raw, false, err
	}

	if len(bytecode)+len(rewrittenData) >= len(parsed.call.data) {
		log.Debug("rewriter: rewrite would not shrink payload, leaving unchanged",
			"algorithm", chosen, "original", len(parsed.call.data), "rewritten", len(bytecode)+len(rewrittenData))
		return raw, false, nil
	}

	newCall := &callObject{to: DecompressorAddress, data: rewrittenData, from: parsed.call.from}
	newOverride := parsed.override.withDecompressorEntry(bytecode)

	out, err := buildPayload(raw, newCall, newOverride)
	if err != nil {
		return raw, false, err
	}
	log.Debug("rewriter: rewrote eth_call payload",
		"algorithm", chosen, "saved", len(parsed.call.data)-len(bytecode)-len(rewrittenData))
	return out, true, nil
}

// compressPayload runs the chosen (or hinted) algorithm against call and
// returns its bytecode, rewritten calldata, and the algorithm name actually
// used (relevant when hint == "" and the size-based policy picks one).
func compressPayload(call *callObject, hint string) (bytecode, rewrittenData []byte, chosen string, err error) {
	switch hint {
	case AlgorithmJIT:
		bytecode, rewrittenData = jitCompress(call)
		return bytecode, rewrittenData, AlgorithmJIT, nil
	case AlgorithmFLZ:
		return flz.Forwarder(call.to), flz.Compress(call.data), AlgorithmFLZ, nil
	case AlgorithmCD:
		return cdrle.Forwarder(call.to), cdrle.Compress(call.data), AlgorithmCD, nil
	case "":
		hexLen := 2 * len(call.data)
		if hexLen < jitLowBound || hexLen >= jitHighBound {
			bytecode, rewrittenData = jitCompress(call)
			return bytecode, rewrittenData, AlgorithmJIT, nil
		}
		flzCode, flzData := flz.Forwarder(call.to), flz.Compress(call.data)
		cdCode, cdData := cdrle.Forwarder(call.to), cdrle.Compress(call.data)
		if len(flzCode)+len(flzData) <= len(cdCode)+len(cdData) {
			return flzCode, flzData, AlgorithmFLZ, nil
		}
		return cdCode, cdData, AlgorithmCD, nil
	default:
		return nil, nil, "", &ErrUnknownAlgorithm{Algorithm: hint}
	}
}

func jitCompress(call *callObject) (bytecode, rewrittenData []byte) {
	bytecode = jit.Synthesise(call.data, jit.DefaultRules())
	rewrittenData = leftPad32(call.to.Bytes())
	return bytecode, rewrittenData
}

func leftPad32(addr []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(addr):], addr)
	return out
}

// buildPayload assembles the rewritten JSON-RPC object: every top-level key
// of the original request survives except params (replaced) and, for a
// legacy direct-call-object request, the promoted call-object keys
// themselves — the legacy shape has no slot for a state override, so a
// rewritten legacy request is always promoted to the standard three-element
// params array.
func buildPayload(raw json.RawMessage, call *callObject, override stateOverride) (json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, err
	}

	overrideRaw, err := json.Marshal(override)
	if err != nil {
		return nil, err
	}
	blockTagRaw, err := json.Marshal("latest")
	if err != nil {
		return nil, err
	}
	params := []json.RawMessage{call.encode(), blockTagRaw, overrideRaw}
	paramsRaw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	methodRaw, err := json.Marshal("eth_call")
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(top)+2)
	for k, v := range top {
		if k == "params" || isLegacyCallKey(k) {
			continue
		}
		out[k] = v
	}
	out["method"] = methodRaw
	out["params"] = paramsRaw
	return json.Marshal(out)
}

func isLegacyCallKey(k string) bool {
	switch k {
	case "to", "data", "from":
		return true
	}
	return false
}
