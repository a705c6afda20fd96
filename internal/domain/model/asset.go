// Package model defines the core domain entities for the bond optimizer.
package model

import "math"

// Asset is a candidate instrument (bond, share, ...) that can be bought at most once.
//
// Price is the integral price the optimizer indexes on. When the source price is not an
// integer it is rounded to the nearest integer, halves to even, and the signed remainder is kept in PriceDifference, so that
// Price + PriceDifference is always the exact source price.
//
// @Description Candidate asset with its rounded price, yield and derived profit
type Asset struct {
	// Name identifies the asset
	Name string `json:"name" example:"Action-4"`
	// Price is the price rounded to the nearest integer unit
	Price int `json:"price" example:"70"`
	// PriceDifference is the exact price minus the rounded price
	PriceDifference float64 `json:"price_difference" example:"0"`
	// Yield is the yield percentage
	Yield float64 `json:"yield" example:"20"`
	// Profit is price * yield / 100, computed from the exact price
	Profit float64 `json:"profit" example:"14"`
} // @name Asset

// NewAsset builds an Asset from its source values. No validation is performed.
func NewAsset(name string, price, yield float64) Asset {
	rounded := RoundPrice(price)
	return Asset{
		Name:            name,
		Price:           rounded,
		PriceDifference: price - float64(rounded),
		Yield:           yield,
		Profit:          price * yield / 100,
	}
}

// RoundPrice rounds a source price to the nearest integer unit, halves to even.
func RoundPrice(price float64) int {
	return int(math.RoundToEven(price))
}

// ExactPrice returns the source price before rounding.
func (a Asset) ExactPrice() float64 {
	return float64(a.Price) + a.PriceDifference
}
