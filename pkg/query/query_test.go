// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/digideck/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"red", "blue"}, query.StringSlice(" red, ,blue "))
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{"red", "blue", "green"}, query.List([]string{"red,blue", "green"}))
	assert.Nil(t, query.List(nil))
}
