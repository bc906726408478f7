package instruction

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/solana-instruction-api/pkg/code/common"
	"github.com/code-payments/solana-instruction-api/pkg/code/instruction"
	"github.com/code-payments/solana-instruction-api/pkg/metrics"
	"github.com/code-payments/solana-instruction-api/pkg/netutil"
	"github.com/code-payments/solana-instruction-api/pkg/rate"
	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

const (
	rootPath           = "/"
	submitPath         = "/submit"
	keypairPath        = "/keypair"
	signMessagePath    = "/message/sign"
	verifyMessagePath  = "/message/verify"
	createTokenPath    = "/token/create"
	mintTokenPath      = "/token/mint"
	sendSolPath        = "/send/sol"
	sendSolAliasPath   = "/send-sol"
	sendTokenPath      = "/send/token"
	sendTokenAliasPath = "/send-token"

	contentTypeHeaderName      = "content-type"
	jsonContentTypeHeaderValue = "application/json"

	helloMessage   = "Solana instruction API"
	receivedStatus = "Received"

	metricsStructName = "instruction.server"
)

type Server struct {
	log  *logrus.Entry
	conf *conf

	builder  *instruction.Builder
	keypairs *common.KeypairGenerator
	limiter  rate.Limiter

	collectors *metrics.HTTPCollectors
	newRelic   *newrelic.Application
}

type Option func(s *Server)

// WithHTTPCollectors exports request metrics through Prometheus collectors
func WithHTTPCollectors(collectors *metrics.HTTPCollectors) Option {
	return func(s *Server) {
		s.collectors = collectors
	}
}

// WithNewRelic records a New Relic web transaction per request
func WithNewRelic(app *newrelic.Application) Option {
	return func(s *Server) {
		s.newRelic = app
	}
}

func NewInstructionServer(keypairs *common.KeypairGenerator, configProvider ConfigProvider, opts ...Option) *Server {
	conf := configProvider()

	s := &Server{
		log:      logrus.StandardLogger().WithField("type", "instruction/server"),
		conf:     conf,
		builder:  instruction.NewBuilder(),
		keypairs: keypairs,
		limiter:  rate.LocalRateLimiterCtor()(conf.rateLimit.Get(context.Background())),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Server) helloHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.requestLog(r, path)

		if r.Method != http.MethodGet {
			s.writeResponse(log, w, http.StatusMethodNotAllowed, NewGenericApiFailureResponseBody(errMethodNotAllowed))
			return
		}

		s.writeResponse(log, w, http.StatusOK, NewGenericApiSuccessResponseBody(helloMessage))
	}
}

func (s *Server) submitHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.requestLog(r, path)

		statusCode, body := func() (int, GenericApiResponseBody) {
			if r.Method != http.MethodPost {
				return http.StatusMethodNotAllowed, NewGenericApiFailureResponseBody(errMethodNotAllowed)
			}

			fields, err := decodeRequestFields(r, "name", "message")
			if err != nil {
				return s.failure(log, err)
			}

			name, err := fields.requiredString("name")
			if err != nil {
				return s.failure(log, err)
			}

			message, err := fields.requiredString("message")
			if err != nil {
				return s.failure(log, err)
			}

			return http.StatusOK, NewGenericApiSuccessResponseBody(&submissionReceiptView{
				Status: receivedStatus,
				Echoed: &submissionView{
					Name:    name,
					Message: message,
				},
			})
		}()

		s.writeResponse(log, w, statusCode, body)
	}
}

func (s *Server) keypairHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.requestLog(r, path)

		statusCode, body := func() (int, GenericApiResponseBody) {
			ctx := r.Context()

			tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GenerateKeypair")
			defer tracer.End()

			if r.Method != http.MethodPost {
				return http.StatusMethodNotAllowed, NewGenericApiFailureResponseBody(errMethodNotAllowed)
			}

			account, err := s.keypairs.Generate()
			if err != nil {
				tracer.OnError(err)
				return s.failure(log, err)
			}

			metrics.RecordEvent(ctx, metrics.KeypairGeneratedEventName, map[string]interface{}{})

			return http.StatusOK, NewGenericApiSuccessResponseBody(&keypairView{
				PublicKey: account.PublicKey().ToBase58(),
				Secret:    account.PrivateKey().ToBase58(),
			})
		}()

		s.writeResponse(log, w, statusCode, body)
	}
}

func (s *Server) signMessageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.requestLog(r, path)

		statusCode, body := func() (int, GenericApiResponseBody) {
			if r.Method != http.MethodPost {
				return http.StatusMethodNotAllowed, NewGenericApiFailureResponseBody(errMethodNotAllowed)
			}

			fields, err := decodeRequestFields(r, "message", "secret")
			if err != nil {
				return s.failure(log, err)
			}

			message, err := fields.requiredString("message")
			if err != nil {
				return s.failure(log, err)
			}

			encodedSecret, err := fields.requiredString("secret")
			if err != nil {
				return s.failure(log, err)
			}

			secret, err := instruction.ParseSecretKey("secret", encodedSecret)
			if err != nil {
				return s.failure(log, err)
			}

			signature, err := common.Sign([]byte(message), secret)
			if err != nil {
				return s.failure(log, errors.Wrap(err, "secret"))
			}

			signer, err := common.NewAccountFromPrivateKeyBytes(secret)
			if err != nil {
				return s.failure(log, errors.Wrap(instruction.ErrInvalidSecretKey, "secret"))
			}

			return http.StatusOK, NewGenericApiSuccessResponseBody(&signedMessageView{
				Signature: signature.ToBase58(),
				PublicKey: signer.PublicKey().ToBase58(),
				Message:   message,
			})
		}()

		s.writeResponse(log, w, statusCode, body)
	}
}

func (s *Server) verifyMessageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.requestLog(r, path)

		statusCode, body := func() (int, GenericApiResponseBody) {
			ctx := r.Context()

			if r.Method != http.MethodPost {
				return http.StatusMethodNotAllowed, NewGenericApiFailureResponseBody(errMethodNotAllowed)
			}

			fields, err := decodeRequestFields(r, "message", "signature", "pubkey")
			if err != nil {
				return s.failure(log, err)
			}

			message, err := fields.requiredString("message")
			if err != nil {
				return s.failure(log, err)
			}

			encodedSignature, err := fields.requiredString("signature")
			if err != nil {
				return s.failure(log, err)
			}

			encodedPublicKey, err := fields.requiredString("pubkey")
			if err != nil {
				return s.failure(log, err)
			}

			signature, err := instruction.ParseSignature("signature", encodedSignature)
			if err != nil {
				return s.failure(log, err)
			}

			publicKey, err := instruction.ParsePublicKey("pubkey", encodedPublicKey)
			if err != nil {
				return s.failure(log, err)
			}

			valid, err := common.Verify([]byte(message), signature, publicKey)
			if err != nil {
				return s.failure(log, err)
			}

			metrics.RecordEvent(ctx, metrics.MessageVerifiedEventName, map[string]interface{}{
				"valid": valid,
			})

			return http.StatusOK, NewGenericApiSuccessResponseBody(&verifiedMessageView{
				Valid:     valid,
				Message:   message,
				PublicKey: encodedPublicKey,
			})
		}()

		s.writeResponse(log, w, statusCode, body)
	}
}

func (s *Server) createTokenHandler(path string) http.HandlerFunc {
	return s.instructionHandler(
		path,
		[]string{"mintAuthority", "mint", "decimals", "freezeAuthority"},
		func(fields requestFields) (instruction.Result, error) {
			mintAuthority, err := fields.address("mintAuthority")
			if err != nil {
				return nil, err
			}

			mint, err := fields.address("mint")
			if err != nil {
				return nil, err
			}

			decimals, err := fields.decimals("decimals")
			if err != nil {
				return nil, err
			}

			freezeAuthority, err := fields.optionalAddress("freezeAuthority")
			if err != nil {
				return nil, err
			}

			return s.builder.CreateToken(instruction.CreateTokenArgs{
				Mint:            mint,
				MintAuthority:   mintAuthority,
				FreezeAuthority: freezeAuthority,
				Decimals:        decimals,
			})
		},
		toInstructionView,
	)
}

func (s *Server) mintTokenHandler(path string) http.HandlerFunc {
	return s.instructionHandler(
		path,
		[]string{"mint", "destination", "authority", "amount"},
		func(fields requestFields) (instruction.Result, error) {
			mint, err := fields.address("mint")
			if err != nil {
				return nil, err
			}

			destination, err := fields.address("destination")
			if err != nil {
				return nil, err
			}

			authority, err := fields.address("authority")
			if err != nil {
				return nil, err
			}

			amount, err := fields.amount("amount")
			if err != nil {
				return nil, err
			}

			return s.builder.MintTo(instruction.MintToArgs{
				Mint:        mint,
				Destination: destination,
				Authority:   authority,
				Amount:      amount,
			})
		},
		toInstructionView,
	)
}

func (s *Server) sendSolHandler(path string) http.HandlerFunc {
	return s.instructionHandler(
		path,
		[]string{"from", "to", "lamports"},
		func(fields requestFields) (instruction.Result, error) {
			from, err := fields.address("from")
			if err != nil {
				return nil, err
			}

			to, err := fields.address("to")
			if err != nil {
				return nil, err
			}

			lamports, err := fields.amount("lamports")
			if err != nil {
				return nil, err
			}

			return s.builder.SendSol(instruction.SendSolArgs{
				From:     from,
				To:       to,
				Lamports: lamports,
			})
		},
		toBareInstructionView,
	)
}

func (s *Server) sendTokenHandler(path string) http.HandlerFunc {
	return s.instructionHandler(
		path,
		[]string{"destination", "mint", "owner", "amount"},
		func(fields requestFields) (instruction.Result, error) {
			destination, err := fields.address("destination")
			if err != nil {
				return nil, err
			}

			mint, err := fields.address("mint")
			if err != nil {
				return nil, err
			}

			owner, err := fields.address("owner")
			if err != nil {
				return nil, err
			}

			amount, err := fields.amount("amount")
			if err != nil {
				return nil, err
			}

			return s.builder.SendToken(instruction.SendTokenArgs{
				Destination: destination,
				Mint:        mint,
				Owner:       owner,
				Amount:      amount,
			})
		},
		toSignerInstructionView,
	)
}

// instructionHandler decodes a POST body restricted to allowedFields, runs
// build and renders the resulting instruction with render.
func (s *Server) instructionHandler(
	path string,
	allowedFields []string,
	build func(fields requestFields) (instruction.Result, error),
	render func(ix solana.Instruction) *instructionView,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.requestLog(r, path)

		statusCode, body := func() (int, GenericApiResponseBody) {
			ctx := r.Context()

			tracer := metrics.TraceMethodCall(ctx, metricsStructName, "BuildInstruction")
			tracer.AddAttribute("path", path)
			defer tracer.End()

			if r.Method != http.MethodPost {
				return http.StatusMethodNotAllowed, NewGenericApiFailureResponseBody(errMethodNotAllowed)
			}

			fields, err := decodeRequestFields(r, allowedFields...)
			if err != nil {
				return s.failure(log, err)
			}

			result, err := build(fields)
			if err != nil {
				tracer.OnError(err)
				return s.failure(log, err)
			}

			ix := result.GetInstruction()
			kind := result.Kind().String()

			tracer.AddAttributes(map[string]interface{}{
				"kind":          kind,
				"account_count": len(ix.Accounts),
			})

			log.WithField("kind", kind).Debug("instruction built")
			s.collectors.IncInstructionsBuilt(kind)
			metrics.RecordCount(ctx, "Custom/InstructionsBuilt/"+kind, 1)
			metrics.RecordInstructionBuilt(ctx, kind, len(ix.Data), len(ix.Accounts))

			return http.StatusOK, NewGenericApiSuccessResponseBody(render(ix))
		}()

		s.writeResponse(log, w, statusCode, body)
	}
}

func (s *Server) failure(log *logrus.Entry, err error) (int, GenericApiResponseBody) {
	statusCode, exposed := HandleErrorInWebContext(err)
	if statusCode >= http.StatusInternalServerError {
		log.WithError(err).Error("failure handling request")
	} else {
		log.WithError(err).Warn("invalid request")
	}
	return statusCode, NewGenericApiFailureResponseBody(exposed)
}

func (s *Server) writeResponse(log *logrus.Entry, w http.ResponseWriter, statusCode int, body GenericApiResponseBody) {
	w.Header().Set(contentTypeHeaderName, jsonContentTypeHeaderValue)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(body.ToString())); err != nil {
		log.WithError(err).Info("failed to write body")
	}
}

func (s *Server) requestLog(r *http.Request, path string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"path":       path,
		"request_id": requestIDFromContext(r.Context()),
		"client_ip":  netutil.GetClientIP(r),
	})
}

func (s *Server) GetHandlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		rootPath:           s.helloHandler(rootPath),
		submitPath:         s.submitHandler(submitPath),
		keypairPath:        s.keypairHandler(keypairPath),
		signMessagePath:    s.signMessageHandler(signMessagePath),
		verifyMessagePath:  s.verifyMessageHandler(verifyMessagePath),
		createTokenPath:    s.createTokenHandler(createTokenPath),
		mintTokenPath:      s.mintTokenHandler(mintTokenPath),
		sendSolPath:        s.sendSolHandler(sendSolPath),
		sendSolAliasPath:   s.sendSolHandler(sendSolPath),
		sendTokenPath:      s.sendTokenHandler(sendTokenPath),
		sendTokenAliasPath: s.sendTokenHandler(sendTokenPath),
	}
}
