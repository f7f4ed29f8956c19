package model

// DateLayout is the canonical YYYY-MM-DD form used in the input files and
// for date columns in the store. Keeping the stored text in this exact
// shape is what makes substr()-based month bucketing valid.
const DateLayout = "2006-01-02"
