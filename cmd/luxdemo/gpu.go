//go:build !nogpu

package main

import _ "github.com/gogpu/lux/gpu" // register the gpu backend
