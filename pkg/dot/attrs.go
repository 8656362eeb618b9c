package dot

import (
	"fmt"
	"slices"
	"strings"
)

// Attr is a single attribute assignment. A nil Value deletes the
// attribute if present.
//
// A trailing underscore in Name is stripped, so attributes that collide
// with Go keywords or field conventions can be written naturally, for
// example {Name: "class_"} assigns attribute "class". Only one
// underscore is removed: "class__" assigns "class_".
type Attr struct {
	Name  string
	Value any
}

// attrs is an insertion-ordered attribute table. Amending an existing
// attribute keeps its position; new attributes append.
type attrs struct {
	keys []string
	vals map[string]normID
}

func (a *attrs) len() int { return len(a.keys) }

func (a *attrs) get(name string) (normID, bool) {
	v, ok := a.vals[name]
	return v, ok
}

func (a *attrs) set(name string, v normID) {
	if a.vals == nil {
		a.vals = make(map[string]normID)
	}
	if _, ok := a.vals[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.vals[name] = v
}

func (a *attrs) remove(name string) {
	if _, ok := a.vals[name]; !ok {
		return
	}
	delete(a.vals, name)
	if i := slices.Index(a.keys, name); i >= 0 {
		a.keys = slices.Delete(a.keys, i, i+1)
	}
}

func (a *attrs) clone() *attrs {
	c := &attrs{}
	for _, k := range a.keys {
		c.set(k, a.vals[k])
	}
	return c
}

// update merges src into a with src winning, preserving the position of
// amended keys and appending new ones.
func (a *attrs) update(src *attrs) {
	for _, k := range src.keys {
		a.set(k, src.vals[k])
	}
}

// apply validates and applies attribute assignments. Role assignments
// are rejected unless allowRole is set; defaults and role definitions
// are not role-assignable.
func (a *attrs) apply(list []Attr, allowRole bool) error {
	for _, at := range list {
		name := strings.TrimSuffix(at.Name, "_")
		if !allowRole && name == "role" {
			return ErrRoleReserved
		}
		if at.Value == nil {
			a.remove(name)
			continue
		}
		v, err := normalizeID(at.Value, fmt.Sprintf("attribute %s value", name))
		if err != nil {
			return err
		}
		a.set(name, v)
	}
	return nil
}

// roleTable maps role names to their attribute tables, preserving
// definition order.
type roleTable struct {
	names []normID
	roles map[normID]*attrs
}

// role returns the named role's attribute table, creating it if needed.
func (t *roleTable) role(name normID) *attrs {
	if t.roles == nil {
		t.roles = make(map[normID]*attrs)
	}
	ra, ok := t.roles[name]
	if !ok {
		ra = &attrs{}
		t.roles[name] = ra
		t.names = append(t.names, name)
	}
	return ra
}

func (t *roleTable) lookup(name normID) (*attrs, bool) {
	ra, ok := t.roles[name]
	return ra, ok
}

func (t *roleTable) clone() roleTable {
	c := roleTable{}
	for _, name := range t.names {
		c.role(name).update(t.roles[name])
	}
	return c
}

// update merges src into t role by role, src winning per attribute.
func (t *roleTable) update(src *roleTable) {
	for _, name := range src.names {
		t.role(name).update(src.roles[name])
	}
}

// mergeRole folds an entity's assigned role, if any, into its attribute
// table. Explicitly assigned values win; role values append. The kind
// and identity arguments describe the entity for error reporting.
func mergeRole(base *attrs, roles *roleTable, kind, identity string) (*attrs, error) {
	roleName, ok := base.get("role")
	if !ok {
		return base, nil
	}
	ra, ok := roles.lookup(roleName)
	if !ok {
		what := kind
		if identity != "" {
			what += " " + identity
		}
		return nil, fmt.Errorf("%s: role %s: %w", what, debugID(roleName), ErrRoleNotDefined)
	}
	merged := base.clone()
	for _, k := range ra.keys {
		if _, exists := merged.vals[k]; !exists {
			merged.set(k, ra.vals[k])
		}
	}
	merged.remove("role")
	return merged, nil
}
