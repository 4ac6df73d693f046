//go:build wireinject

package main

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/totegamma/charsheet/client"
	"github.com/totegamma/charsheet/core"
	"github.com/totegamma/charsheet/x/auth"
	"github.com/totegamma/charsheet/x/character"
	"github.com/totegamma/charsheet/x/identity"
	"github.com/totegamma/charsheet/x/permission"
	"github.com/totegamma/charsheet/x/resource"
)

// Lv0
var identityServiceProvider = wire.NewSet(identity.NewService, identity.NewRepository, client.NewClient)

// Lv1
var permissionServiceProvider = wire.NewSet(permission.NewService, SetupIdentityService)
var authServiceProvider = wire.NewSet(auth.NewService, SetupIdentityService)

// Lv2
var characterServiceProvider = wire.NewSet(character.NewService, character.NewRepository, SetupIdentityService, SetupPermissionService)

func SetupIdentityService(rdb *redis.Client, mc *memcache.Client, config core.Config) core.IdentityService {
	wire.Build(identityServiceProvider)
	return nil
}

func SetupPermissionService(rdb *redis.Client, mc *memcache.Client, config core.Config) core.PermissionService {
	wire.Build(permissionServiceProvider)
	return nil
}

func SetupAuthService(rdb *redis.Client, mc *memcache.Client, config core.Config) auth.Service {
	wire.Build(authServiceProvider)
	return nil
}

func SetupCharacterService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config core.Config) core.CharacterService {
	wire.Build(characterServiceProvider)
	return nil
}

func SetupIdentityHandler(rdb *redis.Client, mc *memcache.Client, config core.Config) identity.Handler {
	wire.Build(identity.NewHandler, SetupIdentityService, SetupPermissionService)
	return nil
}

func SetupCharacterHandler(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config core.Config) character.Handler {
	wire.Build(character.NewHandler, SetupCharacterService)
	return nil
}

func SetupResourceRegistry(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config core.Config) *resource.Registry {
	wire.Build(resource.NewRegistry, SetupCharacterService)
	return nil
}
