package config

import "github.com/yohamta/donburi/ecs"

// Default is the only ECS layer; nothing is rendered through donburi.
const Default ecs.LayerID = 0
