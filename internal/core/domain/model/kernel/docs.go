// Package kernel contains shared value objects used across the domain model.
//
// Money and Percent wrap decimal arithmetic so that monetary amounts are
// always held as fixed-point values with two decimal places. Binary floating
// point is never used for money anywhere in the domain.
package kernel
