package graph

import "sort"

// Graph 是带权的用户-商品二分图，Build 返回后不可变。
//
// 对每条 (user, product) 边，权重是该用户对该商品所有互动的归一化权重之和
// （重复互动累加，不覆盖、不平均）。两个方向的映射始终对称：
// userToProducts[u][p] == productToUsers[p][u]。
//
// 不可变约定由访问器保证：内部 map 不外泄，查询返回拷贝。
// 同一快照上的并发只读因此天然安全（见 engine 的批量请求）。
type Graph struct {
	userToProducts map[string]map[string]float64
	productToUsers map[string]map[string]float64
	users          map[string]struct{}
	products       map[string]struct{}
}

// HasUser 判断用户是否出现在图中（冷启动判定）。
func (g *Graph) HasUser(userID string) bool {
	_, ok := g.userToProducts[userID]
	return ok
}

// UserProducts 返回用户互动过的商品及累加权重（拷贝，可安全持有/修改）。
// 用户不存在时返回 nil。
func (g *Graph) UserProducts(userID string) map[string]float64 {
	return copyWeights(g.userToProducts[userID])
}

// ProductUsers 返回与商品互动过的用户及累加权重（拷贝）。
// 商品不存在时返回 nil。
func (g *Graph) ProductUsers(productID string) map[string]float64 {
	return copyWeights(g.productToUsers[productID])
}

// Weight 返回 (user, product) 边的累加权重；无边返回 0。
func (g *Graph) Weight(userID, productID string) float64 {
	return g.userToProducts[userID][productID]
}

// Users 返回观测到的全部用户 ID（升序，保证确定性）。
func (g *Graph) Users() []string {
	return sortedKeys(g.users)
}

// Products 返回观测到的全部商品 ID（升序）。
func (g *Graph) Products() []string {
	return sortedKeys(g.products)
}

// UserCount / ProductCount 用于日志与观测。
func (g *Graph) UserCount() int    { return len(g.users) }
func (g *Graph) ProductCount() int { return len(g.products) }

func copyWeights(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
