package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	blueTop   = Product{ID: 1, Name: "Blue Top", Price: 500}
	menTshirt = Product{ID: 2, Name: "Men Tshirt", Price: 400}
)

func TestCart_Add(t *testing.T) {
	var cart Cart

	if _, err := cart.Add(blueTop, 1); err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}
	if _, err := cart.Add(menTshirt, 2); err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}
	line, err := cart.Add(blueTop, 3)
	if err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}
	if line.Quantity != 4 {
		t.Errorf("Expected merged quantity 4, got %d", line.Quantity)
	}

	want := []CartLine{
		{Product: blueTop, Quantity: 4},
		{Product: menTshirt, Quantity: 2},
	}
	if diff := cmp.Diff(want, cart.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if got := cart.Total(); got != 2800 {
		t.Errorf("Total() = %d, want 2800", got)
	}
}

func TestCart_AddInvalidQuantity(t *testing.T) {
	var cart Cart

	for _, q := range []int{0, -1} {
		if _, err := cart.Add(blueTop, q); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("Add(%d) error = %v, want %v", q, err, ErrInvalidQuantity)
		}
	}
	if !cart.IsEmpty() {
		t.Error("Cart should stay empty")
	}
}

func TestCart_Remove(t *testing.T) {
	var cart Cart
	cart.Add(blueTop, 1)
	cart.Add(menTshirt, 1)

	if !cart.Remove(blueTop.ID) {
		t.Error("Remove() should report the removed line")
	}
	if cart.Remove(blueTop.ID) {
		t.Error("Remove() of a missing product should report false")
	}

	want := []CartLine{{Product: menTshirt, Quantity: 1}}
	if diff := cmp.Diff(want, cart.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if cart.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cart.Len())
	}
}

func TestCart_LinesIsACopy(t *testing.T) {
	var cart Cart
	cart.Add(blueTop, 1)

	lines := cart.Lines()
	lines[0].Quantity = 99

	if got := cart.Lines()[0].Quantity; got != 1 {
		t.Errorf("Cart was mutated through Lines(): quantity %d", got)
	}
}
