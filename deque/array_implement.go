package deque

import (
	"thermotube/model"
)

// 环形数组
type ArrDeque struct {
	arr []model.Sample

	// 队头下标
	start int
	// 元素个数
	size int
}

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque{
		arr: make([]model.Sample, capacity),
	}
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) Capacity() int {
	return len(ad.arr)
}

func (ad *ArrDeque) index(i int) int {
	return (ad.start + i) % len(ad.arr)
}

func (ad *ArrDeque) Get(i int) model.Sample {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.index(i)]
}

func (ad *ArrDeque) Traverse(f func(i int, item model.Sample)) {
	for i := 0; i < ad.size; i++ {
		f(i, ad.arr[ad.index(i)])
	}
}

func (ad *ArrDeque) Slice() []model.Sample {
	res := make([]model.Sample, 0, ad.size)
	ad.Traverse(func(_ int, item model.Sample) {
		res = append(res, item)
	})
	return res
}

// 队列满时淘汰队头
func (ad *ArrDeque) AddLast(item model.Sample) {
	if ad.IsFull() {
		ad.RemoveFirst()
	}
	ad.arr[ad.index(ad.size)] = item
	ad.size++
}

func (ad *ArrDeque) RemoveLast() model.Sample {
	if ad.IsEmpty() {
		panic("deque is empty")
	}
	ad.size--
	return ad.arr[ad.index(ad.size)]
}

// 队列满时淘汰队尾
func (ad *ArrDeque) AddFirst(item model.Sample) {
	if ad.IsFull() {
		ad.RemoveLast()
	}
	ad.start = (ad.start - 1 + len(ad.arr)) % len(ad.arr)
	ad.arr[ad.start] = item
	ad.size++
}

func (ad *ArrDeque) RemoveFirst() model.Sample {
	if ad.IsEmpty() {
		panic("deque is empty")
	}
	item := ad.arr[ad.start]
	ad.start = ad.index(1)
	ad.size--
	return item
}

func (ad *ArrDeque) Clear() {
	ad.start = 0
	ad.size = 0
}

func (ad *ArrDeque) IsFull() bool {
	return ad.size == len(ad.arr)
}

func (ad *ArrDeque) IsEmpty() bool {
	return ad.size == 0
}
