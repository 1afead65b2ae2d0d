// Copyright 2024 Example Authors.

// Package sample is a fixture.
package sample

import "fmt"

// Greeter greets.
type Greeter struct {
	Name string // who to greet
}

/*
Greet prints a greeting.
*/
func (g Greeter) Greet() {
	// say it
	fmt.Println("hello, // not a comment", g.Name)
}
