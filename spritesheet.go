package lux

import "fmt"

// UniformSheet splits a sprite into a grid of equally sized cells.
type UniformSheet struct {
	sprite       *Sprite
	cols, rows   int
	cellW, cellH int
}

// NewUniformSheet splits s into cells of cellW x cellH pixels. Pixels
// that do not fill a whole cell at the right and bottom edges are unused.
func NewUniformSheet(s *Sprite, cellW, cellH int) *UniformSheet {
	u := &UniformSheet{sprite: s, cellW: cellW, cellH: cellH}
	if cellW > 0 && cellH > 0 {
		u.cols = s.Width() / cellW
		u.rows = s.Height() / cellH
	}
	return u
}

// Sprite returns the whole sheet.
func (u *UniformSheet) Sprite() *Sprite { return u.sprite }

// Divisions returns the number of columns and rows.
func (u *UniformSheet) Divisions() (cols, rows int) { return u.cols, u.rows }

// Get returns the cell in column x and row y. It panics when the cell is
// outside the sheet.
func (u *UniformSheet) Get(x, y int) *Sprite {
	s, ok := u.GetOpt(x, y)
	if !ok {
		panic(fmt.Sprintf("lux: sprite sheet cell (%d, %d) outside %dx%d grid", x, y, u.cols, u.rows))
	}
	return s
}

// GetOpt returns the cell in column x and row y, if it exists.
func (u *UniformSheet) GetOpt(x, y int) (*Sprite, bool) {
	if x < 0 || y < 0 || x >= u.cols || y >= u.rows {
		return nil, false
	}
	s := u.sprite.SubSprite(x*u.cellW, y*u.cellH, u.cellW, u.cellH)
	return s, s != nil
}

// SpriteSheet maps keys to regions of a sprite.
type SpriteSheet[K comparable] struct {
	sprite  *Sprite
	mapping map[K]*Sprite
}

// NewSpriteSheet returns an empty sheet over s.
func NewSpriteSheet[K comparable](s *Sprite) *SpriteSheet[K] {
	return &SpriteSheet[K]{sprite: s, mapping: make(map[K]*Sprite)}
}

// Sprite returns the whole sheet.
func (s *SpriteSheet[K]) Sprite() *Sprite { return s.sprite }

// Associate maps key to the w x h region at (x, y). It panics when the
// region does not fit in the sheet.
func (s *SpriteSheet[K]) Associate(key K, x, y, w, h int) {
	sub := s.sprite.SubSprite(x, y, w, h)
	if sub == nil {
		panic(fmt.Sprintf("lux: region %dx%d at (%d, %d) outside sprite sheet", w, h, x, y))
	}
	s.mapping[key] = sub
}

// Get returns the sprite for key. It panics when key was never associated.
func (s *SpriteSheet[K]) Get(key K) *Sprite {
	sub, ok := s.mapping[key]
	if !ok {
		panic(fmt.Sprintf("lux: no sprite for key %v", key))
	}
	return sub
}

// GetOpt returns the sprite for key, if any.
func (s *SpriteSheet[K]) GetOpt(key K) (*Sprite, bool) {
	sub, ok := s.mapping[key]
	return sub, ok
}

// Len returns the number of associated keys.
func (s *SpriteSheet[K]) Len() int { return len(s.mapping) }
