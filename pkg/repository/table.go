package repository

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("registro não encontrado")

// Clock permite fixar o relógio nos testes. nil usa time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func newID() string {
	return uuid.NewString()
}

type row[T any] struct {
	seq uint64
	val T
}

// table é a coleção em memória por trás de cada repositório.
// Não tem trava própria: o repositório dono serializa o acesso.
type table[T any] struct {
	rows    map[string]row[T]
	seq     uint64
	created func(T) time.Time
}

func newTable[T any](created func(T) time.Time) *table[T] {
	return &table[T]{
		rows:    make(map[string]row[T]),
		created: created,
	}
}

func (t *table[T]) insert(id string, v T) {
	t.seq++
	t.rows[id] = row[T]{seq: t.seq, val: v}
}

func (t *table[T]) get(id string) (T, bool) {
	r, ok := t.rows[id]
	return r.val, ok
}

func (t *table[T]) update(id string, fn func(*T)) (T, bool) {
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	fn(&r.val)
	t.rows[id] = r
	return r.val, true
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list devolve os registros aceitos por keep, mais recentes primeiro.
func (t *table[T]) list(keep func(T) bool) []T {
	rows := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r.val) {
			rows = append(rows, r)
		}
	}
	return t.sorted(rows)
}

// pick devolve apenas os ids informados, na mesma ordem de list.
func (t *table[T]) pick(ids map[string]struct{}) []T {
	rows := make([]row[T], 0, len(ids))
	for id := range ids {
		if r, ok := t.rows[id]; ok {
			rows = append(rows, r)
		}
	}
	return t.sorted(rows)
}

// Empates de created_at ficam com o inserido por último na frente.
func (t *table[T]) sorted(rows []row[T]) []T {
	sort.Slice(rows, func(i, j int) bool {
		ci, cj := t.created(rows[i].val), t.created(rows[j].val)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.val
	}
	return out
}
