// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tools

// Package tools pins the tool modules run by go generate.
package tools

//go:generate go run github.com/google/addlicense -check ../cmd ../pkg

import _ "github.com/google/addlicense"
