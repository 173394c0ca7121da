// Package sim orchestrates time evolution of a node field under a link
// flux process.
//
// A [Process] turns the current field into a link flux; the simulator
// converts that flux to a rate of change through the finite-volume
// divergence and advances core nodes with a pluggable [Stepper].
// Fixed-value boundary nodes never change and closed boundaries
// exchange no flux.
//
// Simulator instances are not safe for concurrent use.
package sim
