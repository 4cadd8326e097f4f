package store

import "time"

// seedTime stamps the demo records written on first access.
func seedTime() string { return time.Now().UTC().Format(time.RFC3339) }

// seedQuestions is the initial question bank for mock mode.
func seedQuestions() []map[string]any {
	now := seedTime()
	return []map[string]any{
		{
			"id":            "1",
			"subject":       "Toán học",
			"topic":         "Đại số",
			"grade_level":   "10",
			"question_type": "multiple_choice",
			"difficulty":    "medium",
			"question_text": "Giải phương trình: 2x + 3 = 11",
			"options": map[string]any{
				"A": "x = 4", "B": "x = 5", "C": "x = 6", "D": "x = 7",
			},
			"correct_answer": "A",
			"explanation":    "2x + 3 = 11 => 2x = 8 => x = 4",
			"points":         1.0,
			"tags":           []any{"đại số", "phương trình"},
			"is_public":      true,
			"created_by":     "admin",
			"created_at":     now,
			"updated_at":     now,
		},
		{
			"id":            "2",
			"subject":       "Vật lý",
			"topic":         "Cơ học",
			"grade_level":   "11",
			"question_type": "multiple_choice",
			"difficulty":    "hard",
			"question_text": "Một vật chuyển động thẳng đều với vận tốc 10 m/s. Quãng đường vật đi được sau 5 giây là:",
			"options": map[string]any{
				"A": "50 m", "B": "25 m", "C": "15 m", "D": "10 m",
			},
			"correct_answer": "A",
			"explanation":    "s = v.t = 10.5 = 50 m",
			"points":         1.0,
			"tags":           []any{"cơ học", "chuyển động"},
			"is_public":      true,
			"created_by":     "admin",
			"created_at":     now,
			"updated_at":     now,
		},
		{
			"id":            "3",
			"subject":       "Hóa học",
			"topic":         "Hóa hữu cơ",
			"grade_level":   "12",
			"question_type": "multiple_choice",
			"difficulty":    "easy",
			"question_text": "Công thức phân tử của metan là:",
			"options": map[string]any{
				"A": "CH4", "B": "C2H6", "C": "C3H8", "D": "C4H10",
			},
			"correct_answer": "A",
			"explanation":    "Metan có công thức CH4",
			"points":         1.0,
			"tags":           []any{"hóa hữu cơ", "hydrocarbon"},
			"is_public":      true,
			"created_by":     "teacher",
			"created_at":     now,
			"updated_at":     now,
		},
	}
}

func seedExams() []map[string]any {
	now := seedTime()
	return []map[string]any{
		{
			"id":              "1",
			"title":           "Đề thi giữa kỳ môn Toán lớp 10",
			"subject":         "Toán học",
			"grade_level":     "10",
			"duration":        90,
			"total_questions": 20,
			"total_points":    20.0,
			"instructions":    "Thời gian làm bài: 90 phút. Học sinh làm bài trực tiếp trên giấy.",
			"status":          "published",
			"questions":       []any{"1"},
			"created_by":      "admin",
			"created_at":      now,
			"updated_at":      now,
		},
		{
			"id":              "2",
			"title":           "Đề kiểm tra 15 phút Vật lý 11",
			"subject":         "Vật lý",
			"grade_level":     "11",
			"duration":        15,
			"total_questions": 10,
			"total_points":    10.0,
			"instructions":    "Thời gian làm bài: 15 phút.",
			"status":          "draft",
			"questions":       []any{"2"},
			"created_by":      "teacher",
			"created_at":      now,
			"updated_at":      now,
		},
	}
}

func seedLessons() []map[string]any {
	now := seedTime()
	return []map[string]any{
		{
			"id":          "1",
			"title":       "Bài 1: Phương trình bậc nhất một ẩn",
			"subject":     "Toán học",
			"grade_level": "10",
			"topic":       "Đại số",
			"duration":    45,
			"objectives":  []any{"Hiểu được khái niệm phương trình bậc nhất", "Biết cách giải phương trình bậc nhất"},
			"content":     "<h2>1. Khái niệm</h2><p>Phương trình bậc nhất một ẩn có dạng ax + b = 0...</p>",
			"activities":  []any{"Hoạt động 1: Giới thiệu", "Hoạt động 2: Luyện tập"},
			"materials":   []any{"Sách giáo khoa", "Bảng phụ"},
			"created_by":  "teacher",
			"created_at":  now,
			"updated_at":  now,
		},
		{
			"id":          "2",
			"title":       "Bài 2: Chuyển động thẳng đều",
			"subject":     "Vật lý",
			"grade_level": "11",
			"topic":       "Cơ học",
			"duration":    45,
			"objectives":  []any{"Hiểu được khái niệm chuyển động thẳng đều", "Vận dụng công thức tính quãng đường"},
			"content":     "<h2>1. Khái niệm</h2><p>Chuyển động thẳng đều là chuyển động có quỹ đạo là đường thẳng...</p>",
			"activities":  []any{"Hoạt động 1: Thí nghiệm", "Hoạt động 2: Bài tập"},
			"materials":   []any{"Máy đo tốc độ", "Video minh họa"},
			"created_by":  "teacher",
			"created_at":  now,
			"updated_at":  now,
		},
	}
}

func seedUsers() []map[string]any {
	now := seedTime()
	return []map[string]any{
		{
			"id":          "1",
			"username":    "admin",
			"email":       "admin@planbookai.com",
			"full_name":   "Quản trị viên hệ thống",
			"role":        "admin",
			"is_active":   true,
			"is_verified": true,
			"created_at":  now,
		},
		{
			"id":          "2",
			"username":    "teacher1",
			"email":       "teacher1@example.com",
			"full_name":   "Nguyễn Văn A",
			"role":        "teacher",
			"is_active":   true,
			"is_verified": true,
			"created_at":  now,
		},
	}
}

func seedTemplates() []map[string]any {
	return []map[string]any{
		{
			"id":          "1",
			"name":        "Template giáo án Toán học",
			"subject":     "Toán học",
			"grade_level": "10",
			"content": map[string]any{
				"structure":       []any{"Mục tiêu", "Nội dung", "Hoạt động", "Đánh giá"},
				"default_content": "Template mẫu cho giáo án Toán học",
			},
			"created_at": seedTime(),
		},
	}
}

func seedPackages() []map[string]any {
	now := seedTime()
	return []map[string]any{
		{
			"id":            "1",
			"name":          "Gói Basic",
			"price":         50000,
			"duration":      30,
			"features":      []any{"10 giáo án/tháng", "50 câu hỏi", "Hỗ trợ email"},
			"subscriptions": 45,
			"is_active":     true,
			"created_at":    now,
		},
		{
			"id":            "2",
			"name":          "Gói Premium",
			"price":         150000,
			"duration":      30,
			"features":      []any{"Không giới hạn giáo án", "Không giới hạn câu hỏi", "Ưu tiên hỗ trợ", "Tính năng OCR"},
			"subscriptions": 75,
			"is_active":     true,
			"created_at":    now,
		},
	}
}

func seedCurriculum() []map[string]any {
	return []map[string]any{
		{
			"id":          "1",
			"name":        "Khung chương trình Toán 10",
			"subject":     "Toán học",
			"grade_level": "10",
			"description": "Khung chương trình chuẩn môn Toán lớp 10",
			"content": map[string]any{
				"units": []any{
					map[string]any{
						"name":   "Chương 1: Mệnh đề và tập hợp",
						"topics": []any{"Mệnh đề", "Tập hợp", "Các phép toán tập hợp"},
					},
					map[string]any{
						"name":   "Chương 2: Hàm số bậc nhất và bậc hai",
						"topics": []any{"Hàm số", "Hàm số bậc nhất", "Hàm số bậc hai"},
					},
				},
			},
			"created_at": seedTime(),
		},
	}
}
