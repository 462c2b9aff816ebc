package constants

const (
	ERROR_PARSE_DATA_TO_LOCALS = "Lỗi đọc dữ liệu đầu vào"
	DATA_INPUT_IS_NOT_NUMBER   = "Tham số phải là số"
	INVALID_INPUT              = "Dữ liệu không hợp lệ"
	SEAT_MAP_NOT_FOUND         = "Không tìm thấy sơ đồ ghế"
	SECTION_NOT_FOUND          = "Không tìm thấy khu vực"
	ELEMENT_NOT_FOUND          = "Không tìm thấy phần tử"
	STAGE_HAS_NO_SEAT          = "Sân khấu không có ghế"
	TICKET_TYPE_ALREADY_BOUND  = "Loại vé đã được gắn cho khu vực khác"
	SEAT_NOT_AVAILABLE         = "Ghế không còn trống"
	SEAT_NOT_HELD_BY_YOU       = "Ghế không do bạn giữ"
	DATABASE_ERROR             = "Lỗi truy vấn cơ sở dữ liệu"
)
