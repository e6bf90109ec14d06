//go:build !nogpu && !android && !js

package gpu

import _ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan hal backend
