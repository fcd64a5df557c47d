package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyToken              = "token"
	KeyEmail              = "email"
	KeyUserID             = "userId"
	KeyCartID             = "cartId"
	KeyCartItemID         = "cartItemId"
	KeyCartItems          = "cartItems"
	KeyOrderID            = "orderId"
	KeyOrderStatus        = "orderStatus"
	KeyProductID          = "productId"
	KeyCategoryID         = "categoryId"
	KeyPostID             = "postId"
	KeyCommentID          = "commentId"
	KeyExpenseID          = "expenseId"
	KeySubscriptionID     = "subscriptionId"
	KeyQuantity           = "quantity"
	KeyCacheKey           = "cacheKey"
	KeyPathValues         = "pathValues"
	KeyDbURL              = "dbUrl"
	KeyIntent             = "intent"
	KeySyncSucceeded      = "syncSucceeded"
	KeySyncFailed         = "syncFailed"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIP          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyRequestProcessedAt = "requestProcessedAt"
)
