package domain

// CartLine — одна позиция корзины: товар и его количество.
type CartLine struct {
	// Product хранится целиком, чтобы агрегаты считались без обращений к каталогу.
	Product Product
	// Quantity — положительное целое, минимум 1. Позиция с количеством <= 0
	// в корзине существовать не может.
	Quantity int
}

// Cart — упорядоченный набор позиций активной покупательской сессии.
// Порядок — по первому добавлению товара. На каждый идентификатор товара
// приходится не более одной позиции. Агрегаты TotalItems и TotalPrice
// нигде не хранятся и всегда пересчитываются из позиций, поэтому
// рассинхронизироваться с ними не могут.
type Cart struct {
	lines []CartLine
}

// NewCart возвращает пустую корзину.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem добавляет товар в корзину. Если позиция для product.ID уже есть,
// её количество увеличивается на 1, иначе в конец добавляется новая позиция
// с количеством 1. Операция всегда успешна.
func (c *Cart) AddItem(product Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: product, Quantity: 1})
}

// RemoveItem убирает позицию с указанным идентификатором товара.
// Отсутствие позиции ошибкой не считается.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity заменяет количество существующей позиции. Количество <= 0
// эквивалентно RemoveItem. Если позиции нет — ничего не происходит:
// новые позиции создаёт только AddItem.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear опустошает корзину. Вызывается после подтверждённого оформления заказа.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines возвращает копию списка позиций в порядке добавления.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty сообщает, пуста ли корзина.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItems — сумма количеств по всем позициям.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice — сумма price * quantity по всем позициям.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}
