// Package store 提供 core.Store / core.KeyValueStore 的实现与领域适配器。
//
// 注意：接口定义在 core 包，此包只包含实现。
//
//	后端：MemoryStore（开发/测试）、RedisStore（生产）
//	适配器：InteractionLog（互动日志）、CatalogStore（商品目录）、OrderLog（已购集合）
package store
