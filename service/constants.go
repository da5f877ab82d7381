package service

const (
	MaxHorizonYears = 100  // longest projection the engine computes
	MinGrowthRate   = -1.0 // -100% per year; anything lower flips values negative
	MaxSweepPoints  = 201  // appreciation rates evaluated per sensitivity request
	sweepRateScale  = 1e10 // sweep rates are rounded to 10 decimal places
)
