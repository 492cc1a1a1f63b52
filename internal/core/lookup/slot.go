package lookup

import (
	"context"
	"sync"
)

// Slot 呼叫端持有的結果槽
// 每次查詢以 Begin 取得遞增的世代號碼，只有最新世代的結果會被保留，
// 舊的查詢晚到時直接丟棄
type Slot struct {
	mu      sync.Mutex
	latest  uint64
	current *Result
}

// Begin 發出新的世代號碼
func (s *Slot) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Publish 寫入結果；generation 不是最新時不寫入並回傳 false
func (s *Slot) Publish(generation uint64, result Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.latest {
		return false
	}
	result.Generation = generation
	s.current = &result
	return true
}

// Current 目前的結果
func (s *Slot) Current() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Result{}, false
	}
	return *s.current, true
}

// Latest 最新發出的世代號碼
func (s *Slot) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// LookupInto 執行查詢並嘗試寫入 slot，回傳結果與是否被採用
func (p *Pipeline) LookupInto(ctx context.Context, slot *Slot, query string) (Result, bool) {
	return p.Complete(ctx, slot, slot.Begin(), query)
}

// Complete 以預先取得的世代號碼執行查詢並嘗試寫入 slot
// 呼叫端需要依輸入順序編號、但在背景執行查詢時使用
func (p *Pipeline) Complete(ctx context.Context, slot *Slot, generation uint64, query string) (Result, bool) {
	result := p.Lookup(ctx, query)
	result.Generation = generation
	return result, slot.Publish(generation, result)
}
