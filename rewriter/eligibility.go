package rewriter

import "encoding/json"

// parsedPayload is the decoded, gate-checked view of an eligible request.
// Building one is the only way CompressCall decides a payload qualifies;
// anything that fails to parse this far is returned to the caller
// unchanged, per spec.md §7's "ineligibility, not an error" rule.
type parsedPayload struct {
	call     *callObject
	override stateOverride
}

// parseEligible runs spec.md §4.4's eligibility gates against raw in order,
// returning ok=false the moment any gate fails.
func parseEligible(raw json.RawMessage) (*parsedPayload, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, false
	}

	if methodRaw, ok := top["method"]; ok {
		var method string
		if err := json.Unmarshal(methodRaw, &method); err != nil {
			return nil, false
		}
		if method != "" && method != "eth_call" {
			return nil, false
		}
	}

	callRaw, blockTagRaw, overrideRaw, ok := extractParams(top)
	if !ok {
		return nil, false
	}

	call, ok := decodeCallObject(callRaw)
	if !ok {
		return nil, false
	}
	if !decodeBlockTag(blockTagRaw) {
		return nil, false
	}
	override, ok := decodeStateOverride(overrideRaw)
	if !ok {
		return nil, false
	}
	if 2*len(call.data) < MinDataHexLen {
		return nil, false
	}

	return &parsedPayload{call: call, override: override}, true
}

// extractParams splits top into the three logical params slots, supporting
// both the standard params-array shape and spec.md §3's "legacy callers
// pass the call object directly with a top-level method" alternative.
func extractParams(top map[string]json.RawMessage) (callRaw, blockTagRaw, overrideRaw json.RawMessage, ok bool) {
	paramsRaw, hasParams := top["params"]
	if !hasParams {
		legacy := make(map[string]json.RawMessage, len(top))
		for k, v := range top {
			if k == "method" {
				continue
			}
			legacy[k] = v
		}
		b, err := json.Marshal(legacy)
		if err != nil {
			return nil, nil, nil, false
		}
		return b, nil, nil, true
	}

	var params []json.RawMessage
	if err := json.Unmarshal(paramsRaw, &params); err != nil {
		return nil, nil, nil, false
	}
	if len(params) == 0 {
		return nil, nil, nil, false
	}
	callRaw = params[0]
	if len(params) > 1 {
		blockTagRaw = params[1]
	}
	if len(params) > 2 {
		overrideRaw = params[2]
	}
	return callRaw, blockTagRaw, overrideRaw, true
}
