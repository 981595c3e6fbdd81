//go:build !ecscheck

package ecs

const checkEnabled = false
