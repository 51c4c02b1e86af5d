package data

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed yaml/*.yaml
var builtin embed.FS

var (
	ErrUnknownWeapon = errors.New("unknown weapon")
	ErrUnknownEnemy  = errors.New("unknown enemy")
	ErrUnknownBoss   = errors.New("unknown boss")
)

// Catalog holds every content table the simulation reads. It is immutable after
// loading and shared by reference.
type Catalog struct {
	weapons     map[string]*WeaponDef
	weaponOrder []string
	evolutions  []EvolutionRule
	passives    map[string]*PassiveDef
	passiveIDs  []string
	enemies     map[string]*EnemyDef
	spawn       *SpawnTable
	scaling     Scaling
	bosses      map[string]*BossDef
}

// LoadBuiltin parses the content tables compiled into the binary.
func LoadBuiltin() (*Catalog, error) {
	sub, err := fs.Sub(builtin, "yaml")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadDir parses weapon_list.yaml, enemy_list.yaml and boss_list.yaml from dir.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS parses and validates the content tables from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var wf weaponListFile
	if err := decodeFile(fsys, "weapon_list.yaml", &wf); err != nil {
		return nil, err
	}
	var ef enemyListFile
	if err := decodeFile(fsys, "enemy_list.yaml", &ef); err != nil {
		return nil, err
	}
	var bf bossListFile
	if err := decodeFile(fsys, "boss_list.yaml", &bf); err != nil {
		return nil, err
	}

	c := &Catalog{
		weapons:    make(map[string]*WeaponDef, len(wf.Weapons)),
		evolutions: wf.Evolutions,
		passives:   make(map[string]*PassiveDef, len(wf.Passives)),
		enemies:    make(map[string]*EnemyDef, len(ef.Enemies)),
		spawn:      newSpawnTable(ef.SpawnTable),
		scaling:    ef.Scaling,
		bosses:     make(map[string]*BossDef, len(bf.Bosses)),
	}
	for i := range wf.Weapons {
		w := &wf.Weapons[i]
		c.weapons[w.ID] = w
		c.weaponOrder = append(c.weaponOrder, w.ID)
	}
	for i := range wf.Passives {
		p := &wf.Passives[i]
		c.passives[p.ID] = p
		c.passiveIDs = append(c.passiveIDs, p.ID)
	}
	for i := range ef.Enemies {
		e := &ef.Enemies[i]
		c.enemies[e.Key] = e
	}
	for i := range bf.Bosses {
		b := &bf.Bosses[i]
		c.bosses[b.Type] = b
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Validate cross-checks every table and reports all problems at once.
func (c *Catalog) Validate() error {
	var errs []error
	for _, id := range c.weaponOrder {
		if err := validateWeapon(c.weapons[id]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(c.weaponOrder) != len(c.weapons) {
		errs = append(errs, errors.New("duplicate weapon ids"))
	}
	for i, r := range c.evolutions {
		for _, req := range r.Requires {
			w, ok := c.weapons[req]
			if !ok {
				errs = append(errs, fmt.Errorf("evolution %d requires %q: %w", i, req, ErrUnknownWeapon))
				continue
			}
			if w.Evolved {
				errs = append(errs, fmt.Errorf("evolution %d requires evolved weapon %q", i, req))
			}
		}
		if r.Requires[0] == r.Requires[1] {
			errs = append(errs, fmt.Errorf("evolution %d requires the same weapon twice", i))
		}
		ev, ok := c.weapons[r.Evolved]
		if !ok {
			errs = append(errs, fmt.Errorf("evolution %d yields %q: %w", i, r.Evolved, ErrUnknownWeapon))
		} else if !ev.Evolved {
			errs = append(errs, fmt.Errorf("evolution %d yields %q which is not marked evolved", i, r.Evolved))
		}
	}
	for _, id := range c.passiveIDs {
		p := c.passives[id]
		if p.MaxLevel < 1 || p.PerLevel == 0 {
			errs = append(errs, fmt.Errorf("passive %s: max_level and per_level required", id))
		}
		switch p.Effect {
		case PassiveDamage, PassiveCooldown, PassivePickupRadius, PassiveMaxHealth, PassiveMoveSpeed:
		default:
			errs = append(errs, fmt.Errorf("passive %s: unknown effect %q", id, p.Effect))
		}
	}
	for _, e := range c.enemies {
		if err := validateEnemy(e); err != nil {
			errs = append(errs, err)
		}
	}
	if c.spawn.Len() == 0 {
		errs = append(errs, errors.New("spawn_table is empty"))
	}
	for _, k := range c.spawn.Keys() {
		if _, ok := c.enemies[k]; !ok {
			errs = append(errs, fmt.Errorf("spawn_table references %q: %w", k, ErrUnknownEnemy))
		}
	}
	for _, b := range c.bosses {
		if err := validateBoss(b); err != nil {
			errs = append(errs, err)
			continue
		}
		if b.Minion != "" {
			if _, ok := c.enemies[b.Minion]; !ok {
				errs = append(errs, fmt.Errorf("boss %s minion %q: %w", b.Type, b.Minion, ErrUnknownEnemy))
			}
		}
	}
	return errors.Join(errs...)
}

// Weapon returns a weapon definition by id.
func (c *Catalog) Weapon(id string) (*WeaponDef, error) {
	w, ok := c.weapons[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWeapon, id)
	}
	return w, nil
}

// WeaponIDs returns all weapon ids in file order.
func (c *Catalog) WeaponIDs() []string { return c.weaponOrder }

// BaseWeaponIDs returns the non-evolved weapon ids in file order.
func (c *Catalog) BaseWeaponIDs() []string {
	out := make([]string, 0, len(c.weaponOrder))
	for _, id := range c.weaponOrder {
		if !c.weapons[id].Evolved {
			out = append(out, id)
		}
	}
	return out
}

// Evolutions returns the evolution rules in file order.
func (c *Catalog) Evolutions() []EvolutionRule { return c.evolutions }

// Passive returns a passive definition by id.
func (c *Catalog) Passive(id string) (*PassiveDef, bool) {
	p, ok := c.passives[id]
	return p, ok
}

// PassiveIDs returns all passive ids in file order.
func (c *Catalog) PassiveIDs() []string { return c.passiveIDs }

// Enemy returns an enemy definition by key.
func (c *Catalog) Enemy(key string) (*EnemyDef, error) {
	e, ok := c.enemies[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnemy, key)
	}
	return e, nil
}

// EnemyKeys returns every enemy key, sorted.
func (c *Catalog) EnemyKeys() []string {
	keys := make([]string, 0, len(c.enemies))
	for k := range c.enemies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SpawnTable returns the time-indexed spawn weights.
func (c *Catalog) SpawnTable() *SpawnTable { return c.spawn }

// Scaling returns the fallback minute-based scaling.
func (c *Catalog) Scaling() Scaling { return c.scaling }

// Boss returns a boss definition by type.
func (c *Catalog) Boss(bossType string) (*BossDef, error) {
	b, ok := c.bosses[bossType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBoss, bossType)
	}
	return b, nil
}

// Count returns the number of weapons, enemies and bosses loaded.
func (c *Catalog) Count() (weapons, enemies, bosses int) {
	return len(c.weapons), len(c.enemies), len(c.bosses)
}
