// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package wc counts the lines, words, bytes and characters of text in the
// same way as the POSIX wc utility, using SIMD instructions when the CPU
// supports them.
//
// Two locales are supported. In the SingleByte locale every byte is a
// character and only ASCII whitespace separates words. In the UTF8 locale
// the input is decoded as UTF-8: characters are Unicode scalar values,
// whitespace is any rune with the White_Space property and invalid bytes
// are neither characters nor whitespace, which means they never split a
// word.
//
// Every Backend produces exactly the same counts as the scalar reference
// implementation, the vector backends only differ in speed.
package wc

//go:generate go run -tags gen gen.go
