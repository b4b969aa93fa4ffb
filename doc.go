// Package shoprec 是一个电商推荐引擎（Shop Recommender）。
//
// 设计要点：
// - 三层召回: WARM（已互动未购买）→ COLLAB（协同过滤）→ DISCOVERY（内容匹配 + 热销兜底）
// - Pipeline-first: 推荐逻辑通过 Node 串联，各层按固定优先级出分，层间不重排
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 图即状态: 互动二部图构建后不可变，重建换新图，读路径无锁
package shoprec

import "github.com/rushteam/shoprec/pipeline"

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
