package instruction

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-instruction-api/pkg/code/common"
	"github.com/code-payments/solana-instruction-api/pkg/metrics"
	"github.com/code-payments/solana-instruction-api/pkg/solana/system"
	"github.com/code-payments/solana-instruction-api/pkg/solana/token"
	"github.com/code-payments/solana-instruction-api/pkg/testutil"
)

type testEnv struct {
	server   *Server
	handler  http.Handler
	registry *prometheus.Registry
}

func setup(t *testing.T, overrides *testOverrides, keypairs *common.KeypairGenerator) testEnv {
	if overrides == nil {
		overrides = &testOverrides{}
	}
	if keypairs == nil {
		keypairs = common.DefaultKeypairGenerator
	}

	registry := prometheus.NewRegistry()
	collectors, err := metrics.NewHTTPCollectors("instruction_api", registry)
	require.NoError(t, err)

	server := NewInstructionServer(keypairs, withManualTestOverrides(overrides), WithHTTPCollectors(collectors))

	handler, err := server.Handler()
	require.NoError(t, err)

	return testEnv{
		server:   server,
		handler:  handler,
		registry: registry,
	}
}

type response struct {
	statusCode int
	body       map[string]any
}

func (e testEnv) do(t *testing.T, method, path, body string) response {
	var reader io.Reader
	if len(body) > 0 {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, jsonContentTypeHeaderValue, rec.Header().Get(contentTypeHeaderName))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return response{
		statusCode: rec.Code,
		body:       decoded,
	}
}

func (e testEnv) post(t *testing.T, path string, body any) response {
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	return e.do(t, http.MethodPost, path, string(encoded))
}

func requireSuccess(t *testing.T, resp response) map[string]any {
	require.Equal(t, http.StatusOK, resp.statusCode, resp.body)
	require.Equal(t, true, resp.body["success"])

	data, ok := resp.body["data"].(map[string]any)
	require.True(t, ok, resp.body)
	return data
}

func requireFailure(t *testing.T, expectedStatusCode int, resp response) string {
	require.Equal(t, expectedStatusCode, resp.statusCode, resp.body)
	require.Equal(t, false, resp.body["success"])
	assert.NotContains(t, resp.body, "data")

	message, ok := resp.body["error"].(string)
	require.True(t, ok, resp.body)
	return message
}

func decodeInstructionData(t *testing.T, data map[string]any) []byte {
	encoded, ok := data["instruction_data"].(string)
	require.True(t, ok)

	decoded, err := base58.Decode(encoded)
	require.NoError(t, err)
	return decoded
}

func flaggedAccounts(t *testing.T, data map[string]any) []map[string]any {
	raw, ok := data["accounts"].([]any)
	require.True(t, ok)

	accounts := make([]map[string]any, len(raw))
	for i, account := range raw {
		accounts[i], ok = account.(map[string]any)
		require.True(t, ok)
	}
	return accounts
}

func TestHello(t *testing.T) {
	env := setup(t, nil, nil)

	resp := env.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.statusCode)
	assert.Equal(t, true, resp.body["success"])
	assert.Equal(t, helloMessage, resp.body["data"])
}

func TestSubmit(t *testing.T) {
	env := setup(t, nil, nil)

	data := requireSuccess(t, env.post(t, "/submit", map[string]any{"name": "alice", "message": "hi"}))
	assert.Equal(t, "Received", data["status"])
	assert.Equal(t, map[string]any{"name": "alice", "message": "hi"}, data["echoed"])

	message := requireFailure(t, http.StatusBadRequest, env.post(t, "/submit", map[string]any{"name": "alice"}))
	assert.Equal(t, "missing required field: message", message)
}

func TestKeypair_SignAndVerify(t *testing.T) {
	env := setup(t, nil, nil)

	keypair := requireSuccess(t, env.do(t, http.MethodPost, "/keypair", ""))
	pubkey := keypair["pubkey"].(string)
	secret := keypair["secret"].(string)

	decodedSecret, err := base58.Decode(secret)
	require.NoError(t, err)
	require.Len(t, decodedSecret, 64)
	assert.Equal(t, pubkey, base58.Encode(decodedSecret[32:]))

	signed := requireSuccess(t, env.post(t, "/message/sign", map[string]any{
		"message": "Hello, Solana!",
		"secret":  secret,
	}))
	assert.Equal(t, pubkey, signed["pubkey"])
	assert.Equal(t, "Hello, Solana!", signed["message"])
	signature := signed["signature"].(string)

	verified := requireSuccess(t, env.post(t, "/message/verify", map[string]any{
		"message":   "Hello, Solana!",
		"signature": signature,
		"pubkey":    pubkey,
	}))
	assert.Equal(t, true, verified["valid"])
	assert.Equal(t, "Hello, Solana!", verified["message"])
	assert.Equal(t, pubkey, verified["pubkey"])

	verified = requireSuccess(t, env.post(t, "/message/verify", map[string]any{
		"message":   "Hello, Bitcoin!",
		"signature": signature,
		"pubkey":    pubkey,
	}))
	assert.Equal(t, false, verified["valid"])
}

func TestKeypair_InjectedEntropy(t *testing.T) {
	first := setup(t, nil, common.NewKeypairGenerator(testutil.NewDeterministicReader("fixture")))
	second := setup(t, nil, common.NewKeypairGenerator(testutil.NewDeterministicReader("fixture")))

	a := requireSuccess(t, first.do(t, http.MethodPost, "/keypair", ""))
	b := requireSuccess(t, second.do(t, http.MethodPost, "/keypair", ""))
	assert.Equal(t, a, b)

	c := requireSuccess(t, first.do(t, http.MethodPost, "/keypair", ""))
	assert.NotEqual(t, a["pubkey"], c["pubkey"])
}

func TestKeypair_EntropyUnavailable(t *testing.T) {
	env := setup(t, nil, common.NewKeypairGenerator(iotest.ErrReader(errors.New("no entropy"))))

	message := requireFailure(t, http.StatusInternalServerError, env.do(t, http.MethodPost, "/keypair", ""))
	assert.Equal(t, "internal server error", message)
}

func TestSignMessage_Invalid(t *testing.T) {
	env := setup(t, nil, nil)

	for _, tc := range []struct {
		body     map[string]any
		expected string
	}{
		{map[string]any{"message": "hi"}, "missing required field: secret"},
		{map[string]any{"secret": "abc"}, "missing required field: message"},
		{map[string]any{"message": "hi", "secret": "0OIl"}, "secret: invalid secret key"},
		{map[string]any{"message": "hi", "secret": base58.Encode(make([]byte, 63))}, "secret: invalid secret key"},
		{map[string]any{"message": 5, "secret": "abc"}, "message: expected string"},
	} {
		message := requireFailure(t, http.StatusBadRequest, env.post(t, "/message/sign", tc.body))
		assert.Equal(t, tc.expected, message)
	}

	// Public half that doesn't belong to the seed
	account := testutil.NewRandomAccount(t)
	secret := account.PrivateKey().ToBytes()
	secret[40] ^= 0xff
	message := requireFailure(t, http.StatusBadRequest, env.post(t, "/message/sign", map[string]any{
		"message": "hi",
		"secret":  base58.Encode(secret),
	}))
	assert.Equal(t, "secret: invalid secret key", message)
}

func TestVerifyMessage_Invalid(t *testing.T) {
	env := setup(t, nil, nil)
	pubkey := testutil.NewRandomAccount(t).PublicKey().ToBase58()
	signature := base58.Encode(make([]byte, 64))

	for _, tc := range []struct {
		body     map[string]any
		expected string
	}{
		{map[string]any{"message": "hi", "signature": "abc", "pubkey": pubkey}, "signature: invalid signature"},
		{map[string]any{"message": "hi", "signature": signature, "pubkey": "abcdefghij"}, "pubkey: invalid public key"},
		{map[string]any{"message": "hi", "signature": signature}, "missing required field: pubkey"},
	} {
		message := requireFailure(t, http.StatusBadRequest, env.post(t, "/message/verify", tc.body))
		assert.Equal(t, tc.expected, message)
	}
}

func TestSendSol(t *testing.T) {
	env := setup(t, nil, nil)
	keys := testutil.GenerateSolanaKeys(t, 2)

	body := map[string]any{
		"from":     keys[0].ToBase58(),
		"to":       keys[1].ToBase58(),
		"lamports": 200,
	}

	data := requireSuccess(t, env.post(t, "/send/sol", body))
	assert.Equal(t, system.ProgramKey.ToBase58(), data["program_id"])
	assert.Equal(t, []any{keys[0].ToBase58(), keys[1].ToBase58()}, data["accounts"])
	assert.Equal(t, []byte{2, 0, 0, 0, 200, 0, 0, 0, 0, 0, 0, 0}, decodeInstructionData(t, data))

	aliased := requireSuccess(t, env.post(t, "/send-sol", body))
	assert.Equal(t, data, aliased)

	body["lamports"] = "200"
	fromString := requireSuccess(t, env.post(t, "/send/sol", body))
	assert.Equal(t, data, fromString)

	body["lamports"] = "010"
	data = requireSuccess(t, env.post(t, "/send/sol", body))
	assert.Equal(t, []byte{2, 0, 0, 0, 10, 0, 0, 0, 0, 0, 0, 0}, decodeInstructionData(t, data))

	body["lamports"] = "18446744073709551615"
	data = requireSuccess(t, env.post(t, "/send/sol", body))
	assert.Equal(t, []byte{2, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, decodeInstructionData(t, data))
}

func TestSendSol_Invalid(t *testing.T) {
	env := setup(t, nil, nil)
	keys := testutil.GenerateSolanaKeys(t, 2)

	for _, tc := range []struct {
		name     string
		body     map[string]any
		expected string
	}{
		{"zero lamports", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58(), "lamports": 0}, "lamports: amount must be greater than zero"},
		{"negative lamports", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58(), "lamports": -1}, `lamports: "-1" is not a u64: amount must be greater than zero`},
		{"fractional lamports", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58(), "lamports": 1.5}, `lamports: "1.5" is not a u64: amount must be greater than zero`},
		{"overflowing lamports", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58(), "lamports": "18446744073709551616"}, `lamports: "18446744073709551616" is not a u64: amount must be greater than zero`},
		{"hex lamports", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58(), "lamports": "0x10"}, `lamports: "0x10" is not a u64: amount must be greater than zero`},
		{"boolean lamports", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58(), "lamports": true}, "lamports: expected integer"},
		{"short address", map[string]any{"from": "abcdefghij", "to": keys[1].ToBase58(), "lamports": 1}, "from: invalid address"},
		{"empty address", map[string]any{"from": keys[0].ToBase58(), "to": "", "lamports": 1}, "missing required field: to"},
		{"missing address", map[string]any{"from": keys[0].ToBase58(), "lamports": 1}, "missing required field: to"},
		{"missing lamports", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58()}, "missing required field: lamports"},
		{"unknown field", map[string]any{"from": keys[0].ToBase58(), "to": keys[1].ToBase58(), "lamports": 1, "memo": "x"}, "unknown field: memo"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			message := requireFailure(t, http.StatusBadRequest, env.post(t, "/send/sol", tc.body))
			assert.Equal(t, tc.expected, message)
		})
	}
}

func TestCreateToken(t *testing.T) {
	env := setup(t, nil, nil)
	keys := testutil.GenerateSolanaKeys(t, 3)

	data := requireSuccess(t, env.post(t, "/token/create", map[string]any{
		"mintAuthority": keys[0].ToBase58(),
		"mint":          keys[1].ToBase58(),
		"decimals":      6,
	}))
	assert.Equal(t, token.ProgramKey.ToBase58(), data["program_id"])

	accounts := flaggedAccounts(t, data)
	require.Len(t, accounts, 2)
	assert.Equal(t, map[string]any{"pubkey": keys[1].ToBase58(), "is_signer": false, "is_writable": true}, accounts[0])
	assert.Equal(t, map[string]any{"pubkey": system.RentSysVar.ToBase58(), "is_signer": false, "is_writable": false}, accounts[1])

	instructionData := decodeInstructionData(t, data)
	require.Len(t, instructionData, 35)
	assert.EqualValues(t, 0, instructionData[0])
	assert.EqualValues(t, 6, instructionData[1])
	assert.Equal(t, keys[0][:], instructionData[2:34])
	assert.EqualValues(t, 0, instructionData[34])

	data = requireSuccess(t, env.post(t, "/token/create", map[string]any{
		"mintAuthority":   keys[0].ToBase58(),
		"mint":            keys[1].ToBase58(),
		"decimals":        "9",
		"freezeAuthority": keys[2].ToBase58(),
	}))
	instructionData = decodeInstructionData(t, data)
	require.Len(t, instructionData, 67)
	assert.EqualValues(t, 9, instructionData[1])
	assert.EqualValues(t, 1, instructionData[34])
	assert.Equal(t, keys[2][:], instructionData[35:])

	// Leading zeros are decimal, never octal
	data = requireSuccess(t, env.post(t, "/token/create", map[string]any{
		"mintAuthority": keys[0].ToBase58(),
		"mint":          keys[1].ToBase58(),
		"decimals":      "010",
	}))
	assert.EqualValues(t, 10, decodeInstructionData(t, data)[1])
}

func TestCreateToken_Invalid(t *testing.T) {
	env := setup(t, nil, nil)
	keys := testutil.GenerateSolanaKeys(t, 2)

	for _, tc := range []struct {
		decimals any
		expected string
	}{
		{256, "decimals: decimals must be between 0 and 255"},
		{-1, "decimals: decimals must be between 0 and 255"},
		{"six", "decimals: decimals must be between 0 and 255"},
		{"0x10", "decimals: decimals must be between 0 and 255"},
		{"8.0", "decimals: decimals must be between 0 and 255"},
		{8.5, "decimals: decimals must be between 0 and 255"},
		{"256", "decimals: decimals must be between 0 and 255"},
		{true, "decimals: expected integer"},
		{nil, "missing required field: decimals"},
	} {
		message := requireFailure(t, http.StatusBadRequest, env.post(t, "/token/create", map[string]any{
			"mintAuthority": keys[0].ToBase58(),
			"mint":          keys[1].ToBase58(),
			"decimals":      tc.decimals,
		}))
		assert.Equal(t, tc.expected, message)
	}

	message := requireFailure(t, http.StatusBadRequest, env.post(t, "/token/create", map[string]any{
		"mintAuthority":   keys[0].ToBase58(),
		"mint":            keys[1].ToBase58(),
		"decimals":        6,
		"freezeAuthority": "abcdefghij",
	}))
	assert.Equal(t, "freezeAuthority: invalid address", message)

	message = requireFailure(t, http.StatusBadRequest, env.post(t, "/token/create", map[string]any{
		"mint_authority": keys[0].ToBase58(),
		"mint":           keys[1].ToBase58(),
		"decimals":       6,
	}))
	assert.Equal(t, "unknown field: mint_authority", message)
}

func TestMintToken(t *testing.T) {
	env := setup(t, nil, nil)
	keys := testutil.GenerateSolanaKeys(t, 3)
	mint, destination, authority := keys[0], keys[1], keys[2]

	destinationAccount, err := token.GetAssociatedAccount(destination, mint)
	require.NoError(t, err)

	data := requireSuccess(t, env.post(t, "/token/mint", map[string]any{
		"mint":        mint.ToBase58(),
		"destination": destination.ToBase58(),
		"authority":   authority.ToBase58(),
		"amount":      1000000,
	}))
	assert.Equal(t, token.ProgramKey.ToBase58(), data["program_id"])
	assert.Equal(t, "0740420f0000000000", hex.EncodeToString(decodeInstructionData(t, data)))

	accounts := flaggedAccounts(t, data)
	require.Len(t, accounts, 3)
	assert.Equal(t, map[string]any{"pubkey": mint.ToBase58(), "is_signer": false, "is_writable": true}, accounts[0])
	assert.Equal(t, map[string]any{"pubkey": destinationAccount.ToBase58(), "is_signer": false, "is_writable": true}, accounts[1])
	assert.Equal(t, map[string]any{"pubkey": authority.ToBase58(), "is_signer": true, "is_writable": false}, accounts[2])

	message := requireFailure(t, http.StatusBadRequest, env.post(t, "/token/mint", map[string]any{
		"mint":        mint.ToBase58(),
		"destination": destination.ToBase58(),
		"authority":   authority.ToBase58(),
		"amount":      0,
	}))
	assert.Equal(t, "amount: amount must be greater than zero", message)
}

func TestSendToken(t *testing.T) {
	env := setup(t, nil, nil)
	keys := testutil.GenerateSolanaKeys(t, 3)
	destination, mint, owner := keys[0], keys[1], keys[2]

	sourceAccount, err := token.GetAssociatedAccount(owner, mint)
	require.NoError(t, err)
	destinationAccount, err := token.GetAssociatedAccount(destination, mint)
	require.NoError(t, err)

	body := map[string]any{
		"destination": destination.ToBase58(),
		"mint":        mint.ToBase58(),
		"owner":       owner.ToBase58(),
		"amount":      123456789,
	}

	data := requireSuccess(t, env.post(t, "/send/token", body))
	assert.Equal(t, token.ProgramKey.ToBase58(), data["program_id"])
	assert.Equal(t, "0315cd5b0700000000", hex.EncodeToString(decodeInstructionData(t, data)))

	// Accounts mirror the built transfer: the owner's token account is the
	// source and the owner wallet is the only signer.
	accounts := flaggedAccounts(t, data)
	assert.Equal(t, []map[string]any{
		{"pubkey": sourceAccount.ToBase58(), "isSigner": false},
		{"pubkey": destinationAccount.ToBase58(), "isSigner": false},
		{"pubkey": owner.ToBase58(), "isSigner": true},
	}, accounts)
	assert.NotEqual(t, owner.ToBase58(), accounts[0]["pubkey"])

	aliased := requireSuccess(t, env.post(t, "/send-token", body))
	assert.Equal(t, data, aliased)

	delete(body, "owner")
	message := requireFailure(t, http.StatusBadRequest, env.post(t, "/send/token", body))
	assert.Equal(t, "missing required field: owner", message)
}

func TestMalformedBodies(t *testing.T) {
	env := setup(t, &testOverrides{maxBodyBytes: 64}, nil)

	for _, body := range []string{"", "   ", "[]", "null", "5", `{"from":`, `{"from":"a"} {}`} {
		message := requireFailure(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/send/sol", body))
		assert.Equal(t, ErrMalformedBody.Error(), message, body)
	}

	large := `{"from":"` + strings.Repeat("a", 128) + `"}`
	message := requireFailure(t, http.StatusRequestEntityTooLarge, env.do(t, http.MethodPost, "/send/sol", large))
	assert.Equal(t, "request body too large", message)
}

func TestRouting(t *testing.T) {
	env := setup(t, nil, nil)

	message := requireFailure(t, http.StatusNotFound, env.do(t, http.MethodGet, "/balance/abc", ""))
	assert.Equal(t, "not found", message)

	message = requireFailure(t, http.StatusMethodNotAllowed, env.do(t, http.MethodGet, "/keypair", ""))
	assert.Equal(t, "method not allowed", message)

	message = requireFailure(t, http.StatusMethodNotAllowed, env.do(t, http.MethodPost, "/", "{}"))
	assert.Equal(t, "method not allowed", message)
}

func TestRequestID(t *testing.T) {
	env := setup(t, nil, nil)

	seen := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		requestID := rec.Header().Get(requestIDHeaderName)
		_, err := uuid.Parse(requestID)
		require.NoError(t, err)

		seen[requestID] = struct{}{}
	}
	assert.Len(t, seen, 3)
}

func TestRateLimit(t *testing.T) {
	env := setup(t, &testOverrides{rateLimit: 1}, nil)

	resp := env.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.statusCode)

	message := requireFailure(t, http.StatusTooManyRequests, env.do(t, http.MethodGet, "/", ""))
	assert.Equal(t, "rate limit exceeded", message)

	// A different client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	env := setup(t, &testOverrides{allowedOrigins: []string{"https://app.example.com"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_InvalidAllowedOrigin(t *testing.T) {
	server := NewInstructionServer(
		common.DefaultKeypairGenerator,
		withManualTestOverrides(&testOverrides{allowedOrigins: []string{"ftp://example.com"}}),
	)

	_, err := server.Handler()
	assert.Error(t, err)
}

func TestPrometheusCollectors(t *testing.T) {
	env := setup(t, nil, nil)
	keys := testutil.GenerateSolanaKeys(t, 2)

	requireSuccess(t, env.post(t, "/send/sol", map[string]any{
		"from":     keys[0].ToBase58(),
		"to":       keys[1].ToBase58(),
		"lamports": 1,
	}))
	env.do(t, http.MethodGet, "/unknown", "")

	families, err := env.registry.Gather()
	require.NoError(t, err)

	counts := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}

			labels := family.GetName()
			for _, label := range metric.GetLabel() {
				labels += "," + label.GetName() + "=" + label.GetValue()
			}
			counts[labels] = metric.GetCounter().GetValue()
		}
	}

	assert.EqualValues(t, 1, counts["instruction_api_instructions_built_count,kind=send_sol"])
	assert.EqualValues(t, 1, counts["instruction_api_request_count,code=200,method=POST,route=/send/sol"])
	assert.EqualValues(t, 1, counts["instruction_api_request_count,code=404,method=GET,route=unmatched"])
}

func TestOverTCP(t *testing.T) {
	env := setup(t, nil, nil)

	server, err := testutil.NewServer(env.handler)
	require.NoError(t, err)

	stop, err := server.Serve()
	require.NoError(t, err)
	defer stop()

	resp, err := http.Post(server.URL()+"/keypair", jsonContentTypeHeaderValue, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := requireSuccess(t, response{statusCode: resp.StatusCode, body: body})
	assert.NotEmpty(t, data["pubkey"])
}
