package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeDataSource implementa dataSource en memoria para probar el router entero
// sin Postgres: cinco perfumes y dos categorías de tendencia.
type fakeDataSource struct {
	perfumes [][]any // brand, perfume_name, rating_value, rating_count
	trends   [][]any // trend_category, avg_rating, volume

	queryErr  error
	lastQuery string
	lastArgs  []any
}

func (source *fakeDataSource) Ping(ctx context.Context) error {
	return nil
}

func (source *fakeDataSource) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (source *fakeDataSource) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	source.lastQuery = sql
	source.lastArgs = args
	if source.queryErr != nil {
		return nil, source.queryErr
	}

	switch {
	case strings.Contains(sql, "FROM perfumes") && strings.Contains(sql, "LIMIT $"):
		// Listado: aplica filtro de marca y LIMIT/OFFSET igual que lo haría la DB.
		rows := source.perfumes
		if strings.Contains(sql, "WHERE brand = $1") {
			brand := args[0].(string)
			filtered := [][]any{}
			for _, row := range rows {
				if row[0] == brand {
					filtered = append(filtered, row)
				}
			}
			rows = filtered
			args = args[1:]
		}
		limit := args[0].(int)
		offset := args[1].(int)
		if offset > len(rows) {
			offset = len(rows)
		}
		end := offset + limit
		if end > len(rows) {
			end = len(rows)
		}
		projected := [][]any{}
		for _, row := range rows[offset:end] {
			projected = append(projected, row[:3])
		}
		return &fakeRows{fields: []string{"brand", "perfume_name", "rating_value"}, rows: projected}, nil

	case strings.Contains(sql, "FROM perfumes WHERE perfume_name = $1"):
		name := args[0].(string)
		for _, row := range source.perfumes {
			if row[1] == name {
				return &fakeRows{
					fields: []string{"brand", "perfume_name", "rating_value", "rating_count"},
					rows:   [][]any{row},
				}, nil
			}
		}
		return &fakeRows{fields: []string{"brand", "perfume_name", "rating_value", "rating_count"}}, nil

	case strings.Contains(sql, "FROM v_perfume_market_trends WHERE trend_category = $1"):
		category := args[0].(string)
		for _, row := range source.trends {
			if row[0] == category {
				return &fakeRows{fields: []string{"trend_category", "avg_rating", "volume"}, rows: [][]any{row}}, nil
			}
		}
		return &fakeRows{fields: []string{"trend_category", "avg_rating", "volume"}}, nil

	case strings.Contains(sql, "FROM v_perfume_market_trends"):
		return &fakeRows{fields: []string{"trend_category", "avg_rating", "volume"}, rows: source.trends}, nil
	}

	return nil, fmt.Errorf("unexpected query: %s", sql)
}

func newFakeDataSource() *fakeDataSource {
	return &fakeDataSource{
		perfumes: [][]any{
			{"Lattafa", "Asad", 4.1, int64(5230)},
			{"Lattafa", "Khamrah", 4.3, int64(12873)},
			{"Xerjoff", "Naxos", 4.5, int64(9812)},
			{"Ajmal", "Wisal", math.NaN(), nil},
			{"Al Haramain", "Amber Oud", 4.2, int64(7600)},
		},
		trends: [][]any{
			{"oud perfume", 4.21, int64(1500)},
			{"vanilla perfume", math.NaN(), int64(320)},
		},
	}
}

func doRequest(t *testing.T, source *fakeDataSource, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := newRouter(source)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PerfumeListPagination(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantCount int
	}{
		{name: "first page full", path: "/api/perfumes?page=1&limit=2", wantCount: 2},
		{name: "last page partial", path: "/api/perfumes?page=3&limit=2", wantCount: 1},
		{name: "past the end is empty, not an error", path: "/api/perfumes?page=4&limit=2", wantCount: 0},
		{name: "defaults cover the whole set", path: "/api/perfumes", wantCount: 5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := doRequest(t, newFakeDataSource(), test.path)

			require.Equal(t, http.StatusOK, rec.Code)

			var envelope struct {
				Page  int              `json:"page"`
				Limit int              `json:"limit"`
				Count int              `json:"count"`
				Data  []map[string]any `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			require.Equal(t, test.wantCount, envelope.Count)
			require.Len(t, envelope.Data, envelope.Count)
			require.LessOrEqual(t, envelope.Count, envelope.Limit)
		})
	}
}

func TestRouter_PerfumeListRejectsBadPagination(t *testing.T) {
	paths := []string{
		"/api/perfumes?page=0",
		"/api/perfumes?page=-1",
		"/api/perfumes?limit=0",
		"/api/perfumes?limit=101",
		"/api/perfumes?page=abc",
		"/api/perfumes?limit=abc",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			source := newFakeDataSource()
			rec := doRequest(t, source, path)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			// El rechazo ocurre antes de cualquier viaje a la base.
			require.Empty(t, source.lastQuery)
		})
	}
}

func TestRouter_PerfumeListBrandFilter(t *testing.T) {
	source := newFakeDataSource()
	rec := doRequest(t, source, "/api/perfumes?brand=Lattafa")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, source.lastQuery, "WHERE brand = $1")
	require.Equal(t, "Lattafa", source.lastArgs[0])

	var envelope struct {
		Count int `json:"count"`
		Data  []struct {
			Brand string `json:"brand"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, 2, envelope.Count)
	for _, row := range envelope.Data {
		require.Equal(t, "Lattafa", row.Brand)
	}
}

func TestRouter_PerfumeDetail(t *testing.T) {
	t.Run("known name returns full row", func(t *testing.T) {
		rec := doRequest(t, newFakeDataSource(), "/api/perfumes/Khamrah")

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Lattafa", body["brand"])
		require.Equal(t, "Khamrah", body["perfume_name"])
		require.Equal(t, 4.3, body["rating_value"])
		require.Equal(t, float64(12873), body["rating_count"])
	})

	t.Run("NaN rating serializes as null", func(t *testing.T) {
		rec := doRequest(t, newFakeDataSource(), "/api/perfumes/Wisal")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "NaN")

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Contains(t, body, "rating_value")
		require.Nil(t, body["rating_value"])
	})

	t.Run("unknown name returns 404", func(t *testing.T) {
		rec := doRequest(t, newFakeDataSource(), "/api/perfumes/Nonexistent")

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "not_found")
	})
}

func TestRouter_Trends(t *testing.T) {
	t.Run("list returns every category", func(t *testing.T) {
		rec := doRequest(t, newFakeDataSource(), "/api/trends")

		require.Equal(t, http.StatusOK, rec.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 2)
		require.Equal(t, "oud perfume", body[0]["trend_category"])
		require.Nil(t, body[1]["avg_rating"])
	})

	t.Run("empty view is an empty array", func(t *testing.T) {
		source := newFakeDataSource()
		source.trends = nil
		rec := doRequest(t, source, "/api/trends")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("detail matches url-escaped label exactly", func(t *testing.T) {
		source := newFakeDataSource()
		rec := doRequest(t, source, "/api/trends/oud%20perfume")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "oud perfume", source.lastArgs[0])

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "oud perfume", body["trend_category"])
		require.Equal(t, 4.21, body["avg_rating"])
		require.Equal(t, float64(1500), body["volume"])
	})

	t.Run("unknown category returns 404", func(t *testing.T) {
		rec := doRequest(t, newFakeDataSource(), "/api/trends/citrus")

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_DataSourceErrorsAre500(t *testing.T) {
	source := newFakeDataSource()
	source.queryErr = errors.New("dial tcp: connection refused")

	for _, path := range []string{"/api/perfumes", "/api/perfumes/Khamrah", "/api/trends", "/api/trends/oud"} {
		t.Run(path, func(t *testing.T) {
			rec := doRequest(t, source, path)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			require.Contains(t, rec.Body.String(), "datasource_error")
			require.Contains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestRouter_RoutingErrorsAreJSON(t *testing.T) {
	router := newRouter(newFakeDataSource())

	t.Run("unknown path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/perfumes", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})
}

func TestRouter_HealthAndReady(t *testing.T) {
	router := newRouter(newFakeDataSource())

	for _, path := range []string{"/health", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	}
}

// fakeRows implementa pgx.Rows sobre una matriz en memoria.

type fakeRows struct {
	fields []string
	rows   [][]any
	idx    int
	closed bool
	err    error
}

func (rows *fakeRows) Close() {
	rows.closed = true
}

func (rows *fakeRows) Err() error {
	return rows.err
}

func (rows *fakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (rows *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	descriptions := make([]pgconn.FieldDescription, len(rows.fields))
	for i, name := range rows.fields {
		descriptions[i] = pgconn.FieldDescription{Name: name}
	}
	return descriptions
}

func (rows *fakeRows) Next() bool {
	if rows.closed || rows.idx >= len(rows.rows) {
		return false
	}
	rows.idx++
	return true
}

func (rows *fakeRows) Scan(dest ...any) error {
	if rows.idx == 0 || rows.idx > len(rows.rows) {
		return errors.New("scan called without next")
	}
	return assignValues(dest, rows.rows[rows.idx-1])
}

func (rows *fakeRows) Values() ([]any, error) {
	if rows.idx == 0 || rows.idx > len(rows.rows) {
		return nil, errors.New("values called without next")
	}
	return rows.rows[rows.idx-1], nil
}

func (rows *fakeRows) RawValues() [][]byte {
	return nil
}

func (rows *fakeRows) Conn() *pgx.Conn {
	return nil
}

func assignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dest len %d does not match values len %d", len(dest), len(values))
	}
	for i, d := range dest {
		if d == nil {
			continue
		}
		if err := assignValue(d, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest any, value any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return fmt.Errorf("dest is not pointer")
	}
	if value == nil {
		destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
		return nil
	}
	valueValue := reflect.ValueOf(value)
	destElem := destValue.Elem()
	if destElem.Kind() == reflect.Ptr {
		ptrValue := reflect.New(destElem.Type().Elem())
		ptrValue.Elem().Set(valueValue.Convert(destElem.Type().Elem()))
		destElem.Set(ptrValue)
		return nil
	}
	destElem.Set(valueValue.Convert(destElem.Type()))
	return nil
}
