package store

const queryCreateProduct = `
INSERT INTO products (
	title, description, price, condition, image_url,
	seller_id, seller_name, seller_email, status
) VALUES (
	@title, @description, @price, @condition, @image_url,
	@seller_id, @seller_name, @seller_email, 'available'
)
RETURNING id, status, created_at`

const queryGetProduct = `
SELECT id, title, description, price, condition, image_url,
       seller_id, seller_name, seller_email, status, created_at
FROM products
WHERE id = $1`

// queryMarkProductSold applies every transition guard in the WHERE
// clause so the check-and-set is a single atomic statement. Zero rows
// means a guard failed; the caller re-reads the row to classify which.
const queryMarkProductSold = `
UPDATE products
SET status = 'sold'
WHERE id = $1
  AND seller_id = $2
  AND status = 'available'
RETURNING id, title, description, price, condition, image_url,
          seller_id, seller_name, seller_email, status, created_at`

const queryCreateMessage = `
INSERT INTO messages (product_id, sender_id, receiver_id, body)
VALUES (@product_id, @sender_id, @receiver_id, @body)
RETURNING id, created_at`

const queryListMessagesByProduct = `
SELECT id, product_id, sender_id, receiver_id, body, created_at
FROM messages
WHERE product_id = $1
ORDER BY created_at ASC`
