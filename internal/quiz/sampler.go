package quiz

import (
	"math/rand/v2"
	"time"

	"go_5_vocab_quiz/internal/model"
)

// Sampler は語彙から出題リストを無作為に選びます。
// 乱数源を差し替えられるのでテストでは固定シードを使います。
// 並行利用には対応していません。
type Sampler struct {
	rnd *rand.Rand
}

// NewSampler は与えた乱数源で Sampler を作ります。nil の場合は現在時刻をシードにします。
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	return &Sampler{rnd: rand.New(src)}
}

// NewSeededSampler は固定シードの Sampler を返します。
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample は vocabulary から最大 count 件を重複なしで選びます。
// 重複は ID で判定するため、ID が同じ語 (ID 未設定の 0 同士も含む) は1件にまとまります。
// 件数が count 以下なら全件をシャッフルして返します。入力スライスは変更しません。
func (s *Sampler) Sample(vocabulary []model.Vocabulary, count int) ([]model.Vocabulary, error) {
	if len(vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// 同じIDが複数カテゴリから届いても1問として扱う
	pool := make([]model.Vocabulary, 0, len(vocabulary))
	seen := make(map[uint]struct{}, len(vocabulary))
	for _, v := range vocabulary {
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}
		pool = append(pool, v)
	}

	k := count
	if k > len(pool) {
		k = len(pool)
	}
	if k < 0 {
		k = 0
	}

	// 部分 Fisher-Yates
	n := len(pool)
	for i := 0; i < k; i++ {
		j := i + s.rnd.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k], nil
}
