package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/iho/splitledger/internal/adapter/http"
	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/adapter/http/handler"
	"github.com/iho/splitledger/internal/adapter/http/middleware"
	"github.com/iho/splitledger/internal/adapter/repository/postgres"
	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
	"github.com/iho/splitledger/tests/testutil"
)

// testEnv wires the full HTTP stack against a real database. Metrics and the
// balance cache are left out so each test observes repository state directly.
type testEnv struct {
	DB         *testutil.TestDB
	Router     http.Handler
	OutboxRepo *postgres.OutboxRepository
	GroupUC    *usecase.GroupUseCase
	ExpenseUC  *usecase.ExpenseUseCase
	LedgerUC   *usecase.LedgerUseCase
	PaymentUC  *usecase.PaymentUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	directory := postgres.NewMemberDirectory(pool)
	retrier := postgres.NewRetrier()
	idGen := postgres.NewULIDGenerator()

	groupUC := usecase.NewGroupUseCase(txManager, groupRepo, directory, outboxRepo, idGen, nil)
	expenseUC := usecase.NewExpenseUseCase(txManager, groupRepo, outboxRepo, idGen, nil)
	ledgerUC := usecase.NewLedgerUseCase(groupRepo, nil, zerolog.Nop(), nil)
	paymentUC := usecase.NewPaymentUseCase(txManager, groupRepo, outboxRepo, idGen, retrier, nil)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		GroupHandler:   handler.NewGroupHandler(groupUC),
		ExpenseHandler: handler.NewExpenseHandler(expenseUC),
		LedgerHandler:  handler.NewLedgerHandler(ledgerUC),
		PaymentHandler: handler.NewPaymentHandler(paymentUC),
		HealthHandler:  handler.NewHealthHandler(pool, nil),
		Logger:         zerolog.Nop(),
	})

	return &testEnv{
		DB:         testDB,
		Router:     router,
		OutboxRepo: outboxRepo,
		GroupUC:    groupUC,
		ExpenseUC:  expenseUC,
		LedgerUC:   ledgerUC,
		PaymentUC:  paymentUC,
	}
}

// do issues a request against the router, marshaling body as JSON when
// non-nil and stamping the actor header when actorID is non-empty.
func (env *testEnv) do(t *testing.T, method, path, actorID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		r.Header.Set(middleware.ActorHeader, actorID)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, r)

	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}

	return v
}

// addEqualExpense posts an equal-split expense over the whole roster and
// returns the created expense.
func (env *testEnv) addEqualExpense(t *testing.T, group *domain.Group, payerID, description string, amount decimal.Decimal) dto.ExpenseResponse {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/v1/groups/"+group.ID+"/expenses", payerID, dto.CreateExpenseRequest{
		Description: description,
		PayerID:     payerID,
		Amount:      amount,
		Method:      "equal",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create expense: status %d: %s", w.Code, w.Body.String())
	}

	return decodeJSON[dto.ExpenseResponse](t, w)
}
