// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// +build debug

package abide

// _DEBUG turns programmer-error conditions (an invalid variable
// identifier, an unrecognized Operator) from a sticky error flag into an
// immediate panic, for use while developing or testing a caller. Build
// with the "debug" tag to enable it.
const _DEBUG bool = true
