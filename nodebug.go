// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// +build !debug

package abide

// _DEBUG is off by default: programmer-error conditions are recorded on
// the sticky error flag (see errors.go) but do not panic.
const _DEBUG bool = false
