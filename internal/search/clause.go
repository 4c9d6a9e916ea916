// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/digideck/internal/catalog"
)

// # Fields

// Field is a card attribute a clause can inspect.
type Field int

const (
	FieldName Field = iota
	FieldEffect
	FieldInheritedEffect
	FieldDigivolveEffect
	FieldSecurityEffect
	FieldLevel
	FieldColor
	FieldCardType
	FieldRarity
)

// TextFields are searched by the free-text query.
var TextFields = []Field{FieldName, FieldEffect, FieldInheritedEffect, FieldDigivolveEffect, FieldSecurityEffect}

func (f Field) value(card *catalog.Card) string {
	switch f {
	case FieldName:
		return card.Name
	case FieldEffect:
		return card.Effect
	case FieldInheritedEffect:
		return card.InheritedEffect
	case FieldDigivolveEffect:
		return card.DigivolveEffect
	case FieldSecurityEffect:
		return card.SecurityEffect
	case FieldLevel:
		return string(card.Level)
	case FieldColor:
		return card.Color
	case FieldCardType:
		return card.CardType
	case FieldRarity:
		return card.Rarity
	default:
		panic(fmt.Sprintf("search: unknown field %d", f))
	}
}

// # Clauses

// Clause is one condition of a [Spec]. The set of clause kinds is closed:
// [Contains], [OneOf] and [InSet].
type Clause interface {
	isClause()
}

// Contains matches when any field contains Needle (case-insensitive substring).
type Contains struct {
	Needle string
	Fields []Field
}

// OneOf matches when any field equals one of Values (case-insensitive).
// An empty Values list matches every card.
type OneOf struct {
	Fields []Field
	Values []string
}

// InSet matches when any printing of the card belongs to one of Sets
// (case-insensitive). An empty Sets list matches every card.
type InSet struct {
	Sets []string
}

func (Contains) isClause() {}
func (OneOf) isClause()    {}
func (InSet) isClause()    {}

// Spec is an ordered list of clauses joined by AND.
type Spec []Clause

/*
Build emits one clause per non-empty criterion, in this order: colors, card
types, text, level, rarity, set.
*/
func Build(criteria Criteria) Spec {
	var spec Spec

	if len(criteria.Colors) > 0 {
		spec = append(spec, OneOf{Fields: []Field{FieldColor}, Values: criteria.Colors})
	}
	if len(criteria.CardTypes) > 0 {
		spec = append(spec, OneOf{Fields: []Field{FieldCardType}, Values: criteria.CardTypes})
	}
	if text := strings.TrimSpace(criteria.Text); text != "" {
		spec = append(spec, Contains{Needle: text, Fields: TextFields})
	}
	if level := strings.TrimSpace(criteria.Level); level != "" {
		spec = append(spec, Contains{Needle: level, Fields: []Field{FieldLevel}})
	}
	if len(criteria.Rarities) > 0 {
		spec = append(spec, OneOf{Fields: []Field{FieldRarity}, Values: criteria.Rarities})
	}
	if len(criteria.Sets) > 0 {
		spec = append(spec, InSet{Sets: criteria.Sets})
	}

	return spec
}

// # Evaluation

// matcher folds case with one Caser per evaluation pass. A Caser keeps
// internal state, so a matcher must not be shared between goroutines.
type matcher struct {
	caser cases.Caser
}

func newMatcher() *matcher {
	return &matcher{caser: cases.Fold()}
}

func (m *matcher) fold(value string) string {
	return m.caser.String(value)
}

// matches reports whether card passes every clause, stopping at the first failure.
func (m *matcher) matches(card *catalog.Card, spec Spec) bool {
	for _, clause := range spec {
		if !m.matchClause(card, clause) {
			return false
		}
	}
	return true
}

func (m *matcher) matchClause(card *catalog.Card, clause Clause) bool {
	switch c := clause.(type) {

	case Contains:
		needle := m.fold(c.Needle)
		return slices.ContainsFunc(c.Fields, func(field Field) bool {
			return strings.Contains(m.fold(field.value(card)), needle)
		})

	case OneOf:
		if len(c.Values) == 0 {
			return true
		}
		return slices.ContainsFunc(c.Fields, func(field Field) bool {
			return m.memberFold(c.Values, field.value(card))
		})

	case InSet:
		if len(c.Sets) == 0 {
			return true
		}
		return slices.ContainsFunc(card.Printings, func(printing catalog.Printing) bool {
			return m.memberFold(c.Sets, printing.Set)
		})

	default:
		panic(fmt.Sprintf("search: unknown clause %T", clause))
	}
}

func (m *matcher) memberFold(accepted []string, value string) bool {
	folded := m.fold(value)
	return slices.ContainsFunc(accepted, func(candidate string) bool {
		return m.fold(candidate) == folded
	})
}

// Matches reports whether a single card passes spec.
func Matches(card catalog.Card, spec Spec) bool {
	return newMatcher().matches(&card, spec)
}
