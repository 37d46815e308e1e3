// Package orderedmap реализует отображение, которое помнит порядок
// первого добавления ключей.
package orderedmap

// Map хранит значения по ключу и перечисляет их в порядке первого добавления.
// Нулевое значение не готово к использованию, создавайте через New.
type Map[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// New создаёт пустую Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Get возвращает значение по ключу.
func (m *Map[K, V]) Get(key K) (V, bool) {
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Set сохраняет значение. Повторная запись не меняет позицию ключа.
func (m *Map[K, V]) Set(key K, val V) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = val
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// GetOrInit возвращает значение по ключу, создавая его через init при отсутствии.
func (m *Map[K, V]) GetOrInit(key K, init func() V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	v := init()
	m.Set(key, v)
	return v
}

// Len возвращает количество ключей.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Each вызывает fn для каждой пары в порядке добавления.
func (m *Map[K, V]) Each(fn func(key K, val V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}
