//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/basketd/database"
	httpctx "github.com/dtroode/basketd/internal/api/http/context"
	"github.com/dtroode/basketd/internal/api/http/router"
	"github.com/dtroode/basketd/internal/credential"
	"github.com/dtroode/basketd/internal/model"
	repo "github.com/dtroode/basketd/internal/repository/postgres"
	"github.com/dtroode/basketd/internal/service"
	"github.com/dtroode/basketd/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "basket_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/basket_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// setup migrates and reseeds the database, so every test starts from the fixtures.
func setup(t *testing.T) *repo.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := repo.NewConnection(ctx, repo.Options{DSN: dsn, MaxConns: 8, QueryTimeout: 5 * time.Second})
	require.NoError(t, err)
	sqlDB := conn.SQL()
	t.Cleanup(func() {
		_ = sqlDB.Close()
		_ = conn.Close()
	})

	require.NoError(t, database.Migrate(ctx, sqlDB, nil))
	hasher := credential.NewHasher(credential.Params{Time: 1, MemKiB: 1024, Par: 1})
	require.NoError(t, database.NewSeeder(sqlDB, hasher).Reset(ctx))

	return conn
}

func newAPI(t *testing.T, conn *repo.Connection) *httptest.Server {
	t.Helper()
	lg := testutil.MakeNoopLogger()
	hasher := credential.NewHasher(credential.Params{Time: 1, MemKiB: 1024, Par: 1})

	services := router.Services{
		Baskets:  service.NewBasket(repo.NewBasketRepository(conn), lg),
		Catalog:  service.NewCatalog(repo.NewProductRepository(conn), lg),
		Verifier: service.NewAuth(repo.NewAccountRepository(conn), hasher, lg),
		Pinger:   conn,
	}
	srv := httptest.NewServer(router.New(services, httpctx.NewManager(), lg, false).Register())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, target, user, password string, form url.Values) *http.Response {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if user != "" {
		req.SetBasicAuth(user, password)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func item(ref, qt string) url.Values {
	return url.Values{"product_ref": {ref}, "product_qt": {qt}}
}

func contentRows(t *testing.T, conn *repo.Connection, basketID int64) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow(context.Background(),
		`SELECT count(*) FROM basket_content WHERE basket_ref = $1`, basketID).Scan(&n))
	return n
}

func TestBasketScenarios(t *testing.T) {
	conn := setup(t)
	api := newAPI(t, conn)

	// 1. first basket of pierre
	resp := do(t, http.MethodPost, api.URL+"/baskets", "pierre", "123456", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "/baskets/1", resp.Header.Get("Location"))

	var owner int64
	require.NoError(t, conn.QueryRow(context.Background(),
		`SELECT b.owner_uid FROM basket b JOIN user_account u ON u.uid = b.owner_uid WHERE b.bid = 1 AND u.email = 'pierre'`).Scan(&owner))

	// 2. wrong password
	resp = do(t, http.MethodPost, api.URL+"/baskets", "pierre", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Basic realm="Credentials required"`, resp.Header.Get("WWW-Authenticate"))

	// 3. add an item
	resp = do(t, http.MethodPost, api.URL+"/baskets/1", "pierre", "123456", item("1", "2"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, contentRows(t, conn, 1))

	var qt *int
	require.NoError(t, conn.QueryRow(context.Background(),
		`SELECT product_qt FROM basket_content WHERE basket_ref = 1 AND product_ref = 1`).Scan(&qt))
	assert.Nil(t, qt, "quantity is validated but not stored")

	// 4. zero quantity
	resp = do(t, http.MethodPost, api.URL+"/baskets/1", "pierre", "123456", item("1", "0"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 5. unknown product
	resp = do(t, http.MethodPost, api.URL+"/baskets/1", "pierre", "123456", item("999", "1"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// 6. someone else's basket
	resp = do(t, http.MethodPost, api.URL+"/baskets/1", "toto", "babar", item("1", "1"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1, contentRows(t, conn, 1))
}

func TestBasketRejections_WriteNothing(t *testing.T) {
	conn := setup(t)
	api := newAPI(t, conn)

	resp := do(t, http.MethodGet, api.URL+"/baskets/create", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = do(t, http.MethodPost, api.URL+"/baskets/1", "", "", item("1", "1"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var baskets int
	require.NoError(t, conn.QueryRow(context.Background(), `SELECT count(*) FROM basket`).Scan(&baskets))
	assert.Zero(t, baskets)

	resp = do(t, http.MethodPost, api.URL+"/baskets/42", "pierre", "123456", item("1", "1"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for _, f := range []url.Values{item("x", "1"), item("1", "-3"), item("1", "1.5"), {"product_ref": {"1"}}} {
		resp = do(t, http.MethodGet, api.URL+"/baskets/create", "pierre", "123456", nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = do(t, http.MethodPost, api.URL+resp.Header.Get("Location"), "pierre", "123456", f)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, f.Encode())
	}

	var rows int
	require.NoError(t, conn.QueryRow(context.Background(), `SELECT count(*) FROM basket_content`).Scan(&rows))
	assert.Zero(t, rows)
}

func TestAddItem_NotIdempotent(t *testing.T) {
	conn := setup(t)
	api := newAPI(t, conn)

	resp := do(t, http.MethodPost, api.URL+"/baskets", "toto", "babar", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	location := resp.Header.Get("Location")

	for range 2 {
		resp = do(t, http.MethodPost, api.URL+location, "toto", "babar", item("3", "1"))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	assert.Equal(t, 2, contentRows(t, conn, 1))
}

func TestBasketList(t *testing.T) {
	conn := setup(t)
	api := newAPI(t, conn)

	do(t, http.MethodPost, api.URL+"/baskets", "pierre", "123456", nil)
	do(t, http.MethodPost, api.URL+"/baskets", "toto", "babar", nil)

	baskets, err := repo.NewBasketRepository(conn).List(context.Background())
	require.NoError(t, err)
	require.Len(t, baskets, 2)
	assert.Equal(t, model.BasketSummary{ID: 1, OwnerID: 1, OwnerEmail: "pierre"}, baskets[0])
	assert.Equal(t, model.BasketSummary{ID: 2, OwnerID: 2, OwnerEmail: "toto"}, baskets[1])
}

func TestConcurrentCreate_DistinctIDs(t *testing.T) {
	conn := setup(t)
	store := repo.NewBasketRepository(conn)

	const n = 16
	ids := make([]int64, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.WithinTx(context.Background(), func(tx model.BasketTx) error {
				id, err := tx.Create(context.Background(), int64(i%2+1))
				ids[i] = id
				return err
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for i := range n {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "duplicate basket id %d", ids[i])
		seen[ids[i]] = true
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	conn := setup(t)
	store := repo.NewBasketRepository(conn)

	err := store.WithinTx(context.Background(), func(tx model.BasketTx) error {
		if _, err := tx.Create(context.Background(), 1); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	baskets, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, baskets)
}

func TestAccountsAndProducts(t *testing.T) {
	conn := setup(t)
	ctx := context.Background()

	accounts := repo.NewAccountRepository(conn)
	pierre, err := accounts.GetByEmail(ctx, "pierre")
	require.NoError(t, err)
	assert.NotContains(t, pierre.PasswordHash, "123456")

	_, err = accounts.GetByEmail(ctx, "nobody")
	require.ErrorIs(t, err, model.ErrNotFound)

	created, err := accounts.Create(ctx, model.Account{Email: "marie", PasswordHash: "$argon2id$stub"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	products := repo.NewProductRepository(conn)
	list, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Pomme", list[0].Name)
	assert.True(t, list[0].Price.Equal(decimal.RequireFromString("1.20")))

	poire, err := products.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Poire", poire.Name)
	assert.True(t, poire.Price.Equal(decimal.RequireFromString("1.60")))

	_, err = products.GetByID(ctx, 999)
	require.ErrorIs(t, err, model.ErrProductNotFound)

	require.NoError(t, conn.Ping(ctx))
}
