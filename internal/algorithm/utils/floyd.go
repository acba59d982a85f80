package utils

import (
	"math"
)

// FloydResult Floyd算法的结果
type FloydResult struct {
	Dist  [][]float64 // 最短距离矩阵
	Paths [][][]int   // 最短路径矩阵
}

// HopMatrix 把邻接表转换成跳数邻接矩阵：相邻为 1，自身为 0，不相邻为 +Inf。
// 节点编号必须是 0..n-1。
func HopMatrix(adj map[int][]int) [][]float64 {
	n := len(adj)
	graph := make([][]float64, n)
	for i := range graph {
		graph[i] = make([]float64, n)
		for j := range graph[i] {
			if i != j {
				graph[i][j] = math.Inf(1)
			}
		}
	}
	for u, neighbors := range adj {
		for _, v := range neighbors {
			if u >= 0 && u < n && v >= 0 && v < n && u != v {
				graph[u][v] = 1
			}
		}
	}
	return graph
}

// Floyd Floyd算法实现
// graph: 图的邻接矩阵表示，graph[i][j]表示顶点i到顶点j的距离
// 返回: 最短距离矩阵和最短路径矩阵
func Floyd(graph [][]float64) *FloydResult {
	numVertices := len(graph)
	if numVertices == 0 {
		return &FloydResult{
			Dist:  [][]float64{},
			Paths: [][][]int{},
		}
	}

	dist := make([][]float64, numVertices)
	for i := range dist {
		dist[i] = make([]float64, len(graph[i]))
		copy(dist[i], graph[i])
	}

	// -1 表示无中间顶点
	path := make([][]int, numVertices)
	for i := range path {
		path[i] = make([]int, numVertices)
		for j := range path[i] {
			path[i][j] = -1
		}
	}

	for k := 0; k < numVertices; k++ {
		for i := 0; i < numVertices; i++ {
			for j := 0; j < numVertices; j++ {
				if i == j {
					continue
				}
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
					path[i][j] = k
				}
			}
		}
	}

	resultPaths := make([][][]int, numVertices)
	for i := 0; i < numVertices; i++ {
		resultPaths[i] = make([][]int, numVertices)
		for j := 0; j < numVertices; j++ {
			resultPaths[i][j] = shortestPath(i, j, dist, path)
		}
	}

	return &FloydResult{
		Dist:  dist,
		Paths: resultPaths,
	}
}

// shortestPath 构建从 start 到 end 的最短路径，不可达时返回空切片
func shortestPath(start, end int, dist [][]float64, path [][]int) []int {
	if start == end {
		return []int{start}
	}
	if path[start][end] == -1 {
		if math.IsInf(dist[start][end], 1) {
			return []int{}
		}
		return []int{start, end}
	}

	intermediate := path[start][end]
	leftPath := shortestPath(start, intermediate, dist, path)
	rightPath := shortestPath(intermediate, end, dist, path)

	// 去掉重复的中间节点
	result := make([]int, 0, len(leftPath)+len(rightPath))
	result = append(result, leftPath...)
	if len(rightPath) > 0 {
		result = append(result, rightPath[1:]...)
	}
	return result
}

// Diameter 可达节点对之间的最大跳数，以及是否所有节点两两可达
func (r *FloydResult) Diameter() (int, bool) {
	maxHops := 0
	connected := true
	for i := range r.Dist {
		for j := range r.Dist[i] {
			d := r.Dist[i][j]
			if math.IsInf(d, 1) {
				connected = false
				continue
			}
			if int(d) > maxHops {
				maxHops = int(d)
			}
		}
	}
	return maxHops, connected
}
