package rewriter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func hexData(nBytes int) string {
	var b strings.Builder
	b.WriteString("0x")
	for i := 0; i < nBytes; i++ {
		b.WriteString("ab")
	}
	return b.String()
}

func callPayload(t *testing.T, data string, params ...string) json.RawMessage {
	t.Helper()
	m := map[string]interface{}{
		"method": "eth_call",
	}
	call := map[string]interface{}{
		"to":   "0x1111111111111111111111111111111111111111",
		"data": data,
	}
	rawParams := []interface{}{call}
	if len(params) > 0 {
		rawParams = append(rawParams, json.RawMessage(params[0]))
	}
	if len(params) > 1 {
		rawParams = append(rawParams, json.RawMessage(params[1]))
	}
	m["params"] = rawParams
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestCompressCallRewritesEligiblePayload(t *testing.T) {
	payload := callPayload(t, hexData(600))
	out, rewritten, err := CompressCall(payload, AlgorithmJIT)
	require.NoError(t, err)
	require.True(t, rewritten)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	params := decoded["params"].([]interface{})
	call := params[0].(map[string]interface{})
	require.Equal(t, strings.ToLower(DecompressorAddress.Hex()), strings.ToLower(call["to"].(string)))

	data := call["data"].(string)
	require.Equal(t, 66, len(data)) // "0x" + 64 hex chars (32-byte padded address)

	override := params[2].(map[string]interface{})
	require.Contains(t, override, DecompressorAddress.Hex())
}

func TestCompressCallIneligibleTooShort(t *testing.T) {
	payload := callPayload(t, hexData(100)) // hex length < 1150
	out, rewritten, err := CompressCall(payload, AlgorithmJIT)
	require.NoError(t, err)
	require.False(t, rewritten)
	require.JSONEq(t, string(payload), string(out))
}

func TestCompressCallIneligibleWrongMethod(t *testing.T) {
	m := map[string]interface{}{
		"method": "eth_sendTransaction",
		"params": []interface{}{map[string]interface{}{
			"to":   "0x1111111111111111111111111111111111111111",
			"data": hexData(600),
		}},
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	out, rewritten, err := CompressCall(b, "")
	require.NoError(t, err)
	require.False(t, rewritten)
	require.JSONEq(t, string(b), string(out))
}

func TestCompressCallIneligibleNonLatestBlock(t *testing.T) {
	payload := callPayload(t, hexData(600), `"0x123456"`)
	out, rewritten, err := CompressCall(payload, AlgorithmJIT)
	require.NoError(t, err)
	require.False(t, rewritten)
	require.JSONEq(t, string(payload), string(out))
}

func TestCompressCallIneligibleForeignOverrideKey(t *testing.T) {
	overrides := `{"0x000000000000000000000000000000000000beef": {"code": "0x1234"}}`
	payload := callPayload(t, hexData(600), `"latest"`, overrides)
	out, rewritten, err := CompressCall(payload, AlgorithmJIT)
	require.NoError(t, err)
	require.False(t, rewritten)
	require.JSONEq(t, string(payload), string(out))
}

func TestCompressCallIneligibleDecompressorAlreadyOverridden(t *testing.T) {
	overrides := `{"` + DecompressorAddress.Hex() + `": {"code": "0x1234"}}`
	payload := callPayload(t, hexData(600), `"latest"`, overrides)
	out, rewritten, err := CompressCall(payload, AlgorithmJIT)
	require.NoError(t, err)
	require.False(t, rewritten)
	require.JSONEq(t, string(payload), string(out))
}

func TestCompressCallMergesMulticall3Override(t *testing.T) {
	overrides := `{"` + Multicall3Address.Hex() + `": {"balance": "0x1"}}`
	payload := callPayload(t, hexData(600), `"latest"`, overrides)
	out, rewritten, err := CompressCall(payload, AlgorithmJIT)
	require.NoError(t, err)
	require.True(t, rewritten)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	params := decoded["params"].([]interface{})
	override := params[2].(map[string]interface{})
	require.Len(t, override, 2)
	require.Contains(t, override, Multicall3Address.Hex())
	require.Contains(t, override, DecompressorAddress.Hex())
}

func TestCompressCallAlgorithmHintFLZ(t *testing.T) {
	payload := callPayload(t, hexData(2000)) // well within the FLZ/CD comparison band
	out, rewritten, err := CompressCall(payload, AlgorithmFLZ)
	require.NoError(t, err)
	require.True(t, rewritten)
	require.NotEqual(t, string(payload), string(out))
}

func TestCompressCallAlgorithmHintCD(t *testing.T) {
	// Zero-heavy ABI-shaped calldata: the zero-run encoder stores non-zero
	// bytes verbatim, so uniform non-zero data could never shrink.
	payload := callPayload(t, "0xa9059cbb"+strings.Repeat("00", 1996))
	out, rewritten, err := CompressCall(payload, AlgorithmCD)
	require.NoError(t, err)
	require.True(t, rewritten)
	require.NotEqual(t, string(payload), string(out))
}

func TestCompressCallUnknownAlgorithm(t *testing.T) {
	payload := callPayload(t, hexData(600))
	_, rewritten, err := CompressCall(payload, "zstd")
	require.Error(t, err)
	require.False(t, rewritten)
}

func TestCompressCallLegacyFormPromotedOnRewrite(t *testing.T) {
	m := map[string]interface{}{
		"method": "eth_call",
		"to":     "0x2222222222222222222222222222222222222222",
		"data":   hexData(600),
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)

	out, rewritten, err := CompressCall(b, AlgorithmJIT)
	require.NoError(t, err)
	require.True(t, rewritten)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	_, hasParams := decoded["params"]
	require.True(t, hasParams, "legacy payload should be promoted to the params-array shape on rewrite")
}

func TestCompressBatchIndependentResults(t *testing.T) {
	eligible := callPayload(t, hexData(600))
	ineligible := callPayload(t, hexData(50))

	results, err := CompressBatch([]json.RawMessage{eligible, ineligible, eligible}, AlgorithmJIT)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.JSONEq(t, string(ineligible), string(results[1]))
	require.NotEqual(t, string(eligible), string(results[0]))
}
