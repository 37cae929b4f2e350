package retriever

import (
	"strings"

	"github.com/gobia/ragapi/core/errors"
)

// ResponseMode 答案合成模式
type ResponseMode string

const (
	// ModeRefine 逐节点迭代精炼答案
	ModeRefine ResponseMode = "refine"
	// ModeCompact 先紧凑拼接上下文再精炼，LLM 调用更少
	ModeCompact ResponseMode = "compact"
	// ModeSimpleSummarize 所有文本截断进单次 LLM 调用
	ModeSimpleSummarize ResponseMode = "simple_summarize"
	// ModeTreeSummarize 自底向上树状汇总
	ModeTreeSummarize ResponseMode = "tree_summarize"
	// ModeGeneration 忽略上下文直接生成
	ModeGeneration ResponseMode = "generation"
	// ModeNoText 只检索不合成
	ModeNoText ResponseMode = "no_text"
	// ModeContextOnly 返回拼接的上下文文本
	ModeContextOnly ResponseMode = "context_only"
	// ModeAccumulate 每个节点独立作答后拼接
	ModeAccumulate ResponseMode = "accumulate"
	// ModeCompactAccumulate 紧凑拼接后按块独立作答
	ModeCompactAccumulate ResponseMode = "compact_accumulate"
)

// DefaultResponseMode 未指定时的默认合成模式
const DefaultResponseMode = ModeCompact

// ModeInfo 合成模式目录条目
type ModeInfo struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// 合成模式目录，/info 接口对外暴露
var modeCatalog = []ModeInfo{
	{
		Name:  "REFINE",
		Value: string(ModeRefine),
		Description: "Refine is an iterative way of generating a response. " +
			"We first use the context in the first node, along with the query, to generate an initial answer. " +
			"We then pass this answer, the query, and the context of the second node as input into a 'refine prompt' " +
			"to generate a refined answer. We refine through N-1 nodes, where N is the total number of nodes.",
	},
	{
		Name:  "COMPACT",
		Value: string(ModeCompact),
		Description: "Compact and refine mode first combine text chunks into larger consolidated chunks " +
			"that more fully utilize the available context window, then refine answers across them. " +
			"This mode is faster than refine since we make fewer calls to the LLM.",
	},
	{
		Name:  "SIMPLE_SUMMARIZE",
		Value: string(ModeSimpleSummarize),
		Description: "Merge all text chunks into one, and make an LLM call. " +
			"This will fail if the merged text chunk exceeds the context window size.",
	},
	{
		Name:  "TREE_SUMMARIZE",
		Value: string(ModeTreeSummarize),
		Description: "Build a tree index over the set of candidate nodes, with a summary prompt seeded with the query. " +
			"The tree is built in a bottom-up fashion, and in the end, the root node is returned as the response.",
	},
	{
		Name:        "GENERATION",
		Value:       string(ModeGeneration),
		Description: "Ignore context, just use LLM to generate a response.",
	},
	{
		Name:        "NO_TEXT",
		Value:       string(ModeNoText),
		Description: "Return the retrieved context nodes, without synthesizing a final response.",
	},
	{
		Name:        "CONTEXT_ONLY",
		Value:       string(ModeContextOnly),
		Description: "Returns a concatenated string of all text chunks.",
	},
	{
		Name:        "ACCUMULATE",
		Value:       string(ModeAccumulate),
		Description: "Synthesize a response for each text chunk, and then return the concatenation.",
	},
	{
		Name:  "COMPACT_ACCUMULATE",
		Value: string(ModeCompactAccumulate),
		Description: "Compact and accumulate mode first combine text chunks into larger consolidated chunks " +
			"that more fully utilize the available context window, then accumulate answers for each of them " +
			"and finally return the concatenation. This mode is faster than accumulate since we make fewer calls to the LLM.",
	},
}

var responseModes = func() map[ResponseMode]struct{} {
	m := make(map[ResponseMode]struct{}, len(modeCatalog))
	for _, info := range modeCatalog {
		m[ResponseMode(info.Value)] = struct{}{}
	}
	return m
}()

// ModeCatalog 返回合成模式目录副本
func ModeCatalog() []ModeInfo {
	catalog := make([]ModeInfo, len(modeCatalog))
	copy(catalog, modeCatalog)
	return catalog
}

// ParseResponseMode 校验并解析合成模式
// 未知模式在任何检索或模型调用前拒绝
func ParseResponseMode(s string) (ResponseMode, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultResponseMode, nil
	}
	mode := ResponseMode(s)
	if _, ok := responseModes[mode]; !ok {
		return "", errors.Newf(errors.ErrInvalidResponseMode, "unknown response mode: %q", s)
	}
	return mode, nil
}
