package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openreports/report-registry-client/interfaces"
	"github.com/openreports/report-registry-client/registry"
	"github.com/openreports/report-registry-client/session"
	"github.com/openreports/report-registry-client/storage"
	"github.com/openreports/report-registry-client/wallet"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type handlerFixture struct {
	registry *registry.MockRegistry
	wallet   *wallet.MockWalletProvider
	store    *storage.MockContentStore
	manager  *session.Manager
	router   *chi.Mux
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	reg := new(registry.MockRegistry)
	wp := new(wallet.MockWalletProvider)
	store := new(storage.MockContentStore)

	manager := session.NewManager(&session.Config{
		Wallet:   wp,
		Registry: reg,
		Store:    store,
		Log:      testLog,
	})
	handler := NewHandler(manager, testLog)

	router := chi.NewRouter()
	router.Post("/api/connect", handler.HandleConnect)
	router.Get("/api/session", handler.HandleSession)
	router.Get("/api/reports", handler.HandleListReports)
	router.Post("/api/reports", handler.HandleSubmitReport)
	router.Post("/api/reports/refresh", handler.HandleRefresh)
	router.Delete("/api/reports/{id}", handler.HandleDeleteReport)
	router.Post("/api/authorized/{address}", handler.HandleGrant)
	router.Delete("/api/authorized/{address}", handler.HandleRevoke)

	return &handlerFixture{
		registry: reg,
		wallet:   wp,
		store:    store,
		manager:  manager,
		router:   router,
	}
}

func (f *handlerFixture) connect(t *testing.T) {
	t.Helper()

	addr, err := interfaces.NewAddressFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	f.wallet.On("Connect", mock.Anything).Return(addr, nil).Once()
	f.wallet.On("TransactOpts", mock.Anything).Return(&bind.TransactOpts{}, nil).Once()
	f.registry.On("SetTransactOpts", mock.Anything).Return().Once()
	f.registry.On("Owner", mock.Anything).Return(addr, nil).Once()
	f.registry.On("IsAuthorized", mock.Anything, addr).Return(true, nil).Once()

	rec := f.do(t, http.MethodPost, "/api/connect", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func (f *handlerFixture) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func multipartDraft(t *testing.T, title string, payload []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", title))
	part, err := w.CreateFormFile("payload", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestConnectEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.connect(t)

	rec := f.do(t, http.MethodGet, "/api/session", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.True(t, snapshot.Session.Connected)
	require.True(t, snapshot.Session.IsOwner)
}

func TestRefreshEndpointRequiresConnection(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/reports/refresh", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListReportsAttachesContentURLs(t *testing.T) {
	f := newHandlerFixture(t)
	f.connect(t)

	f.registry.On("ReportCount", mock.Anything).Return(uint64(1), nil).Once()
	f.registry.On("Report", mock.Anything, uint64(1)).Return(interfaces.Report{
		ID: 1, Title: "findings", Timestamp: 100, ContentID: "QmTest", IsActive: true,
	}, nil).Once()
	rec := f.do(t, http.MethodPost, "/api/reports/refresh", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	f.store.On("ContentURL", interfaces.ContentID("QmTest")).Return("https://ipfs.io/ipfs/QmTest").Once()

	rec = f.do(t, http.MethodGet, "/api/reports", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []reportView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	require.Equal(t, "https://ipfs.io/ipfs/QmTest", views[0].ContentURL)
}

func TestSubmitEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.connect(t)

	f.store.On("Upload", mock.Anything, []byte("payload")).Return(interfaces.ContentID("QmNew"), nil).Once()
	f.registry.On("AddReport", mock.Anything, "findings", interfaces.ContentID("QmNew")).Return(nil, nil).Once()
	f.registry.On("WaitSettled", mock.Anything, mock.Anything).Return(nil).Once()
	f.registry.On("ReportCount", mock.Anything).Return(uint64(0), nil).Once()

	body, contentType := multipartDraft(t, "findings", []byte("payload"))
	rec := f.do(t, http.MethodPost, "/api/reports", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)
	f.registry.AssertExpectations(t)
}

func TestSubmitEndpointRejectsEmptyTitle(t *testing.T) {
	f := newHandlerFixture(t)
	f.connect(t)

	body, contentType := multipartDraft(t, "", []byte("payload"))
	rec := f.do(t, http.MethodPost, "/api/reports", body, contentType)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitEndpointRequiresConnection(t *testing.T) {
	f := newHandlerFixture(t)

	body, contentType := multipartDraft(t, "findings", []byte("payload"))
	rec := f.do(t, http.MethodPost, "/api/reports", body, contentType)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteEndpointConfirmationGate(t *testing.T) {
	f := newHandlerFixture(t)
	f.connect(t)

	// Without confirm=true no transaction is sent.
	rec := f.do(t, http.MethodDelete, "/api/reports/1", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.registry.AssertNotCalled(t, "DeleteReport", mock.Anything, mock.Anything)

	f.registry.On("DeleteReport", mock.Anything, uint64(1)).Return(nil, nil).Once()
	f.registry.On("WaitSettled", mock.Anything, mock.Anything).Return(nil).Once()
	f.registry.On("ReportCount", mock.Anything).Return(uint64(0), nil).Once()

	rec = f.do(t, http.MethodDelete, "/api/reports/1?confirm=true", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteEndpointRejectsBadID(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodDelete, "/api/reports/banana?confirm=true", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/reports/0?confirm=true", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGrantEndpointValidatesAddress(t *testing.T) {
	f := newHandlerFixture(t)
	f.connect(t)

	rec := f.do(t, http.MethodPost, "/api/authorized/not-an-address", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.registry.AssertNotCalled(t, "AddAuthorized", mock.Anything, mock.Anything)
}

func TestGrantAndRevokeEndpoints(t *testing.T) {
	f := newHandlerFixture(t)
	f.connect(t)

	target, err := interfaces.NewAddressFromHex("0x2222222222222222222222222222222222222222")
	require.NoError(t, err)

	f.registry.On("AddAuthorized", mock.Anything, target).Return(nil, nil).Once()
	f.registry.On("WaitSettled", mock.Anything, mock.Anything).Return(nil).Once()
	rec := f.do(t, http.MethodPost, "/api/authorized/"+target.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	f.registry.On("RemoveAuthorized", mock.Anything, target).Return(nil, nil).Once()
	f.registry.On("WaitSettled", mock.Anything, mock.Anything).Return(nil).Once()
	rec = f.do(t, http.MethodDelete, "/api/authorized/"+target.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	f.registry.AssertExpectations(t)
}
