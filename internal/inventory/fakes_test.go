package inventory

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeDB struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	lastQuery      string
	lastArgs       []any
	queryRowCalled bool
	queryCalled    bool
	execCalled     bool
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.queryRowCalled = true
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryRowFn == nil {
		return &fakeRow{err: errors.New("unexpected QueryRow call")}
	}
	return db.queryRowFn(ctx, sql, args...)
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.queryCalled = true
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return db.queryFn(ctx, sql, args...)
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execCalled = true
	db.lastQuery = sql
	db.lastArgs = args
	if db.execFn == nil {
		return pgconn.CommandTag{}, errors.New("unexpected Exec call")
	}
	return db.execFn(ctx, sql, args...)
}

type fakeRow struct {
	values []any
	err    error
}

func (row *fakeRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	return assignValues(dest, row.values)
}

type fakeRows struct {
	rows    [][]any
	idx     int
	closed  bool
	err     error
	scanErr error
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
	return nil
}

func (rows *fakeRows) Next() bool {
	if rows.closed {
		return false
	}
	if rows.idx >= len(rows.rows) {
		rows.closed = true
		return false
	}
	rows.idx++
	return true
}

func (rows *fakeRows) Scan(dest ...any) error {
	if rows.scanErr != nil {
		return rows.scanErr
	}
	if rows.idx == 0 || rows.idx > len(rows.rows) {
		return errors.New("scan called without next")
	}
	return assignValues(dest, rows.rows[rows.idx-1])
}

func (rows *fakeRows) Values() ([]any, error) {
	return nil, errors.New("not implemented")
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
		destValue := reflect.ValueOf(d)
		if destValue.Kind() != reflect.Ptr {
			return fmt.Errorf("dest %d is not pointer", i)
		}
		if values[i] == nil {
			destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
			continue
		}
		destValue.Elem().Set(reflect.ValueOf(values[i]).Convert(destValue.Elem().Type()))
	}
	return nil
}

// prendaRow arma los valores en el orden de prendaColumns.
func prendaRow(prenda Prenda) []any {
	return []any{
		prenda.ID, prenda.TipoPrenda, prenda.Talla, prenda.Color,
		prenda.CantidadDisponible, prenda.Precio50U, prenda.Precio100U, prenda.Precio200U,
		prenda.Disponible, prenda.Categoria, prenda.Descripcion,
	}
}

// fakeRepo implementa RepositoryAPI para testear el service.
type fakeRepo struct {
	getCalled    bool
	getID        int
	getForUpdate bool
	getErr       error
	getPrenda    Prenda

	listCalled bool
	listErr    error
	listItems  []Prenda

	setCalled bool
	setID     int
	setStock  int
	setErr    error
}

func (fakerepo *fakeRepo) GetByID(ctx context.Context, id int, forUpdate bool) (Prenda, error) {
	fakerepo.getCalled = true
	fakerepo.getID = id
	fakerepo.getForUpdate = forUpdate
	if fakerepo.getErr != nil {
		return Prenda{}, fakerepo.getErr
	}
	return fakerepo.getPrenda, nil
}

func (fakerepo *fakeRepo) List(ctx context.Context) ([]Prenda, error) {
	fakerepo.listCalled = true
	if fakerepo.listErr != nil {
		return nil, fakerepo.listErr
	}
	return fakerepo.listItems, nil
}

func (fakerepo *fakeRepo) SetStock(ctx context.Context, id, stock int) (StockLevel, error) {
	fakerepo.setCalled = true
	fakerepo.setID = id
	fakerepo.setStock = stock
	if fakerepo.setErr != nil {
		return StockLevel{}, fakerepo.setErr
	}
	return StockLevel{ProductID: id, Stock: stock}, nil
}
