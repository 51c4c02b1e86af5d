package world

import (
	"math"
	"time"

	"github.com/nightfall/cryptcore/internal/config"
	"github.com/nightfall/cryptcore/internal/vmath"
)

// Player is the single actor the swarm hunts. Only the input, movement, boss
// and progression systems write it, and only through these methods.
type Player struct {
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Facing vmath.Vec2 // last non-zero movement direction

	Health       float64
	MaxHealth    float64
	Speed        float64
	PickupRadius float64
	Regen        float64 // hp per second
	Radius       float64

	invulnerable time.Duration
	invulnUntil  time.Duration
	smoothing    time.Duration
	Dead         bool
}

func newPlayer(pc config.PlayerConfig, b Bonuses) Player {
	maxHP := pc.MaxHealth + b.MaxHealth
	return Player{
		Facing:       vmath.V(1, 0),
		Health:       maxHP,
		MaxHealth:    maxHP,
		Speed:        pc.Speed,
		PickupRadius: pc.PickupRadius * b.PickupMult,
		Regen:        pc.RegenPerSecond,
		Radius:       pc.Radius,
		invulnerable: pc.Invulnerable.Duration,
		smoothing:    pc.Smoothing.Duration,
	}
}

// Steer eases velocity toward input*speed. input is a normalized movement
// vector already merged from every input source.
func (p *Player) Steer(input vmath.Vec2, dt time.Duration) {
	if p.Dead {
		p.Vel = vmath.Vec2{}
		return
	}
	if input.LenSq() > 1 {
		input = input.Norm()
	}
	target := input.Scale(p.Speed)
	t := 1.0
	if p.smoothing > 0 {
		t = math.Min(1, float64(dt)/float64(p.smoothing))
	}
	p.Vel = p.Vel.Lerp(target, t)
	if !input.IsZero() {
		p.Facing = input.Norm()
	}
}

// Integrate moves the player by its velocity.
func (p *Player) Integrate(dt time.Duration) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt.Seconds()))
}

// Regenerate heals regen*dt while below max health.
func (p *Player) Regenerate(dt time.Duration) {
	if p.Dead || p.Regen <= 0 {
		return
	}
	p.Heal(p.Regen * dt.Seconds())
}

// Invulnerable reports whether damage is ignored at now.
func (p *Player) Invulnerable(now time.Duration) bool {
	return now < p.invulnUntil
}

// takeDamage lands unless the player is dead or inside the invulnerability
// window, which it then opens.
func (p *Player) takeDamage(amount float64, now time.Duration) bool {
	if p.Dead || amount <= 0 || p.Invulnerable(now) {
		return false
	}
	p.Health -= amount
	p.invulnUntil = now + p.invulnerable
	if p.Health <= 0 {
		p.Health = 0
		p.Dead = true
		p.Vel = vmath.Vec2{}
	}
	return true
}

// Heal adds health up to the maximum and returns the amount actually healed.
func (p *Player) Heal(amount float64) float64 {
	if p.Dead || amount <= 0 {
		return 0
	}
	before := p.Health
	p.Health = math.Min(p.MaxHealth, p.Health+amount)
	return p.Health - before
}

// RaiseMaxHealth grows the maximum and heals by the same amount.
func (p *Player) RaiseMaxHealth(amount float64) {
	p.MaxHealth += amount
	p.Heal(amount)
}
