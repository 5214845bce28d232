package issuer

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

const (
	accessKeyHeader       = "Unidentified-Access-Key"
	expiringCredentialTyp = "expiringProfileKey"
	maxBodyBytes          = 64 << 10
)

// Handler serves the issuer HTTP API.
type Handler struct {
	service  domain.IssuerService
	gatherer prometheus.Gatherer
	log      logrus.FieldLogger
}

// NewHandler wraps service. gatherer may be nil to disable /metrics.
func NewHandler(service domain.IssuerService, gatherer prometheus.Gatherer, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{service: service, gatherer: gatherer, log: log}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/keepalive", h.HandleKeepalive)
	r.Put("/v1/profile/{aci}", h.HandleSetProfile)
	r.Get("/v1/profile/{aci}/{version}/{request}", h.HandleGetCredential)
	r.Get("/v1/params", h.HandleParams)
	if h.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
}

// Router returns a chi router with access logging and panic recovery.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)
	h.Register(r)
	return r
}

func (h *Handler) HandleKeepalive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSetProfile(w http.ResponseWriter, r *http.Request) {
	aci, err := types.ParseAci(chi.URLParam(r, "aci"))
	if err != nil {
		h.writeError(w, errors.Wrap(ErrBadRequest, err.Error()))
		return
	}
	var body domain.SetProfileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.writeError(w, errors.Wrapf(ErrBadRequest, "decode body: %v", err))
		return
	}
	if err := h.service.RegisterProfile(aci, body.Version, body.UnidentifiedAccessKey); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetCredential(w http.ResponseWriter, r *http.Request) {
	if t := r.URL.Query().Get("credentialType"); t != expiringCredentialTyp {
		h.writeError(w, errors.Wrapf(ErrBadRequest, "unsupported credentialType %q", t))
		return
	}
	accessKey, err := types.ParseAccessKeyBase64(r.Header.Get(accessKeyHeader))
	if err != nil {
		h.writeError(w, errors.Wrap(ErrUnauthorized, err.Error()))
		return
	}
	aci, err := types.ParseAci(chi.URLParam(r, "aci"))
	if err != nil {
		h.writeError(w, errors.Wrap(ErrBadRequest, err.Error()))
		return
	}
	version := domain.ProfileKeyVersion(chi.URLParam(r, "version"))
	raw, err := hex.DecodeString(chi.URLParam(r, "request"))
	if err != nil {
		h.writeError(w, errors.Wrapf(ErrBadRequest, "request: %v", err))
		return
	}
	req, err := zkcred.DeserializeCredentialRequest(raw)
	if err != nil {
		h.writeError(w, errors.Wrap(ErrBadRequest, err.Error()))
		return
	}

	resp, err := h.service.IssueCredential(aci, version, accessKey, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out, err := resp.Serialize()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, domain.CredentialReply{Credential: crypto.B64(out)})
}

func (h *Handler) HandleParams(w http.ResponseWriter, r *http.Request) {
	p := h.service.PublicParams()
	h.writeJSON(w, http.StatusOK, domain.ParamsReply{
		Environment: p.Environment(),
		ParamsID:    p.ID().String(),
		Params:      crypto.B64(p.Serialize()),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, zkcred.ErrDecode), errors.Is(err, zkcred.ErrParameterMismatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := http.StatusText(status)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
	} else {
		msg = err.Error()
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Warn("write response")
	}
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"route":    chi.RouteContext(r.Context()).RoutePattern(),
			"remote":   r.RemoteAddr,
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start),
		}).Info("request")
	})
}
