// Package taxonomy calcula consultas de árbol sobre categorías almacenadas como arena:
// cada nodo guarda el ID de su padre, nunca una referencia. Un nodo solo puede insertarse
// cuando su padre ya existe, de modo que el grafo es un bosque acíclico por construcción.
package taxonomy

import (
	"fmt"

	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// Row fila de la tabla de categorías en orden de árbol (padre y luego sus hijos).
type Row struct {
	Category entity.Category `json:"category"`
	Depth    int             `json:"depth"`
}

// Tree arena de categorías indexada por ID.
type Tree struct {
	nodes    map[string]entity.Category
	order    []string            // orden de inserción de raíces y estable para hijos
	children map[string][]string // parentID -> hijos; "" agrupa las raíces
}

// NewTree crea una arena vacía.
func NewTree() *Tree {
	return &Tree{
		nodes:    make(map[string]entity.Category),
		children: make(map[string][]string),
	}
}

// Insert agrega una categoría. El padre (si lo hay) debe existir previamente.
func (t *Tree) Insert(c entity.Category) error {
	if c.ID == "" {
		return fmt.Errorf("%w: categoría sin id", domain.ErrInvalidInput)
	}
	if _, ok := t.nodes[c.ID]; ok {
		return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.ID)
	}
	if c.ParentID != "" {
		if _, ok := t.nodes[c.ParentID]; !ok {
			return fmt.Errorf("%w: padre %s de %s", domain.ErrInvalidReference, c.ParentID, c.ID)
		}
	}
	t.nodes[c.ID] = c
	t.order = append(t.order, c.ID)
	t.children[c.ParentID] = append(t.children[c.ParentID], c.ID)
	return nil
}

// Build arma la arena desde una lista en cualquier orden. Inserta por capas: primero
// las raíces, luego los nodos cuyo padre ya está presente. Los nodos que nunca
// alcanzan un padre (huérfanos o ciclos) producen ErrInvalidReference.
func Build(list []entity.Category) (*Tree, error) {
	t := NewTree()
	pending := list
	for len(pending) > 0 {
		var next []entity.Category
		for _, c := range pending {
			if c.ParentID != "" {
				if _, ok := t.nodes[c.ParentID]; !ok {
					next = append(next, c)
					continue
				}
			}
			if err := t.Insert(c); err != nil {
				return nil, err
			}
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("%w: %d categorías sin padre alcanzable (primera: %s)",
				domain.ErrInvalidReference, len(next), next[0].ID)
		}
		pending = next
	}
	return t, nil
}

// Len número de categorías.
func (t *Tree) Len() int { return len(t.nodes) }

// Get devuelve la categoría por ID.
func (t *Tree) Get(id string) (entity.Category, bool) {
	c, ok := t.nodes[id]
	return c, ok
}

// Roots categorías sin padre.
func (t *Tree) Roots() []entity.Category {
	return t.Children("")
}

// Children hijos directos de parentID ("" devuelve las raíces).
func (t *Tree) Children(parentID string) []entity.Category {
	ids := t.children[parentID]
	out := make([]entity.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.nodes[id])
	}
	return out
}

// HasChildren indica si la categoría tiene subcategorías.
func (t *Tree) HasChildren(id string) bool {
	return len(t.children[id]) > 0
}

// Ancestors IDs de los ancestros de id, raíz primero (sin incluir id).
func (t *Tree) Ancestors(id string) []string {
	var rev []string
	c, ok := t.nodes[id]
	for ok && c.ParentID != "" {
		rev = append(rev, c.ParentID)
		c, ok = t.nodes[c.ParentID]
	}
	out := make([]string, len(rev))
	for i, a := range rev {
		out[len(rev)-1-i] = a
	}
	return out
}

// Depth profundidad de la categoría (0 para raíces, -1 si no existe).
func (t *Tree) Depth(id string) int {
	if _, ok := t.nodes[id]; !ok {
		return -1
	}
	return len(t.Ancestors(id))
}

// Rows recorrido en profundidad para la tabla: cada padre seguido de sus hijos.
// Completa Level y Path de cada categoría.
func (t *Tree) Rows() []Row {
	rows := make([]Row, 0, len(t.nodes))
	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		for _, c := range t.Children(parentID) {
			c.Level = depth
			c.Path = t.Ancestors(c.ID)
			rows = append(rows, Row{Category: c, Depth: depth})
			walk(c.ID, depth+1)
		}
	}
	walk("", 0)
	return rows
}

// IsDescendant indica si id está bajo ancestorID (o es el mismo nodo).
func (t *Tree) IsDescendant(id, ancestorID string) bool {
	if id == ancestorID {
		return true
	}
	for _, a := range t.Ancestors(id) {
		if a == ancestorID {
			return true
		}
	}
	return false
}
