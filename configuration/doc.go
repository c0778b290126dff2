// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse Lua or HCL configuration files
//
// for Lua most of the base library is available such as reading files
// to set key data and getenv to extract environment supplied items;
// the file must return a single table
package configuration
